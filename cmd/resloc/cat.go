package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var cat cli.Command = cli.Command{
	Name:      "cat",
	Usage:     "Open a resource and write its content to stdout",
	ArgsUsage: "location",
	Action: func(c *cli.Context) error {
		return catAction(c.Args())
	},
}

func catAction(args []string) (err error) {
	if len(args) != 1 {
		return fmt.Errorf("cat takes exactly one location")
	}

	r, err := newLoader().Resolve(args[0])
	if err != nil {
		return err
	}

	body, err := r.Open()
	if err != nil {
		return err
	}
	defer func() {
		if e := body.Close(); e != nil && err == nil {
			err = errors.Wrapf(e, "error closing %s", r.Description())
		}
	}()

	_, err = io.Copy(os.Stdout, body)
	return errors.Wrapf(err, "error reading %s", r.Description())
}
