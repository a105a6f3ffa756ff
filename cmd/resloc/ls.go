package main

import (
	"fmt"

	"github.com/birkland/resloc/pattern"
	"github.com/urfave/cli"
)

var lsOpts = struct {
	existing bool
}{}

var ls cli.Command = cli.Command{
	Name:  "ls",
	Usage: "List resources matching location patterns",
	Description: `Expands glob patterns (with ** for any number of
	directories) against the loader and lists the matching resources:

	  resloc -r /etc/app ls '**/*.conf'
	  resloc ls 'classpath:cfg/*.yaml'

	A pattern without wildcards lists its single resource.`,
	ArgsUsage: "pattern...",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "existing, e",
			Usage:       "Show only resources that currently exist",
			Destination: &lsOpts.existing,
		},
	},
	Action: func(c *cli.Context) error {
		return lsAction(c.Args())
	},
}

func lsAction(args []string) error {
	resources, err := pattern.New(newLoader()).ResolveAll(args...)
	if err != nil {
		return err
	}

	for _, r := range resources {
		if lsOpts.existing && !r.Exists() {
			continue
		}
		fmt.Println(r.Description())
	}
	return nil
}
