package main

import (
	"log"
	"os"

	"github.com/birkland/resloc"
	"github.com/urfave/cli"
)

var mainOpts = struct {
	root string
	ns   string
}{}

func main() {
	app := cli.NewApp()
	app.Name = "resloc"
	app.Usage = "Resource location utilities"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		resolve,
		cat,
		ls,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "root, r",
			Usage:       "Directory that bare resource paths resolve beneath",
			EnvVar:      "RESLOC_ROOT",
			Destination: &mainOpts.root,
		},
		cli.StringFlag{
			Name:        "ns, n",
			Usage:       "Directory serving as the resource namespace",
			EnvVar:      "RESLOC_NS",
			Destination: &mainOpts.ns,
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// newLoader builds a loader per the global flags: a file loader when a root
// directory is given, otherwise a namespace loader.
func newLoader() *resloc.Loader {
	if mainOpts.root != "" {
		return resloc.NewFileLoader(mainOpts.root)
	}
	if mainOpts.ns != "" {
		return resloc.NewLoader(resloc.WithNamespace(os.DirFS(mainOpts.ns)))
	}
	return resloc.NewLoader()
}
