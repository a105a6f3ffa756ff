package main

import (
	"fmt"

	"github.com/birkland/resloc"
	"github.com/urfave/cli"
)

var resolve cli.Command = cli.Command{
	Name:  "resolve",
	Usage: "Show what locations resolve to",
	Description: `Given one or more locations, print the resource each one
	resolves to, whether it currently exists, and (for context resources)
	its path within the loader's context.

	Locations may be bare paths, /-prefixed paths, classpath: pseudo-URLs,
	or URLs:

	  resloc resolve /cfg/app.yaml classpath:cfg/app.yaml file:///tmp/x
	`,
	ArgsUsage: "location...",
	Action: func(c *cli.Context) error {
		return resolveAction(c.Args())
	},
}

func resolveAction(args []string) error {
	loader := newLoader()

	for _, loc := range args {
		r, err := loader.Resolve(loc)
		if err != nil {
			return err
		}

		fmt.Printf("%s -> %s exists=%t", loc, r.Description(), r.Exists())
		if ctx, ok := resloc.AsContext(r); ok {
			fmt.Printf(" context-path=%s", ctx.PathWithinContext())
		}
		fmt.Println()
	}
	return nil
}
