// Package dispatch is a declarative command registry. Commands are declared
// with a fluent builder:
//
//	reg, _ := dispatch.New()
//	reg.Command(dispatch.Exact("build")).
//		Description("build a target").
//		Alias(dispatch.Exact("b")).
//		Args("target", "mode=fast").
//		Option("!profile", "v").
//		Action(func(ctx *dispatch.Context, args *dispatch.Arguments, opts dispatch.Options) (any, error) {
//			return args.Value("target"), nil
//		})
//
//	out, err := reg.Parse(os.Args[1:])
//
// Argument and option declarations use "[!]name[=default]". Positional
// arguments with defaults must follow every argument without one.
package dispatch
