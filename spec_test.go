package dispatch

import (
	"errors"
	"testing"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in   string
		want ArgumentSpec
	}{
		{"o", ArgumentSpec{Name: "o"}},
		{"!profile", ArgumentSpec{Name: "profile", Required: true}},
		{"mode=fast", ArgumentSpec{Name: "mode", Default: "fast", HasDefault: true}},
		{"!out=./dist", ArgumentSpec{Name: "out", Required: true, Default: "./dist", HasDefault: true}},
		{"dry-run", ArgumentSpec{Name: "dry-run"}},
	}

	for _, tt := range tests {
		got, err := ParseSpec(tt.in)
		if err != nil {
			t.Fatalf("ParseSpec(%q) returned error: %v", tt.in, err)
		}
		if got.Name != tt.want.Name || got.Required != tt.want.Required ||
			got.Default != tt.want.Default || got.HasDefault != tt.want.HasDefault {
			t.Fatalf("ParseSpec(%q) = %+v, want %+v", tt.in, *got, tt.want)
		}
		if got.String() != tt.in {
			t.Fatalf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestParseSpecMalformed(t *testing.T) {
	for _, in := range []string{"", "!", "=x", "a=", "two words", "-o", "!!o"} {
		if _, err := ParseSpec(in); !errors.Is(err, ErrConfiguration) {
			t.Fatalf("ParseSpec(%q) error = %v, want ErrConfiguration", in, err)
		}
	}
}

func TestValidatePositionals(t *testing.T) {
	mk := func(specs ...string) []*ArgumentSpec {
		out := make([]*ArgumentSpec, 0, len(specs))
		for _, s := range specs {
			spec, err := ParseSpec(s)
			if err != nil {
				t.Fatalf("ParseSpec(%q): %v", s, err)
			}
			out = append(out, spec)
		}
		return out
	}

	if err := validatePositionals(mk("a", "b=1", "c=2")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validatePositionals(mk("a=1", "b")); err == nil {
		t.Fatalf("expected error for required after default")
	}
}

func TestParseArgs(t *testing.T) {
	specs, err := ParseArgs("src", "dst=out")
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if len(specs) != 2 || specs[1].Default != "out" {
		t.Fatalf("unexpected specs: %v", specs)
	}

	if _, err := ParseArgs("a=1", "b"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if _, err := ParseArgs("ok", "bad spec"); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
