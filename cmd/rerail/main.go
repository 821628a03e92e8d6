// Command rerail inspects, converts and renders railway map files.
//
// Usage:
//
//	rerail info FILE
//	rerail convert IN OUT
//	rerail export [-o FILE] FILE
//	rerail railways [viewport flags] FILE
//	rerail render [viewport flags] [-config FILE] FILE
//	rerail tiles [-zoom N] [-tile N] [-cols N] [-rows N] [-x N] [-y N] [-out DIR] FILE
//	rerail validate FILE...
package main

import (
	"fmt"
	"log"
	"os"
)

type command struct {
	name  string
	usage string
	run   func(args []string) error
}

var commands = []command{
	{"info", "print entity counts of a map", runInfo},
	{"convert", "load a map in any format and save it in the current format", runConvert},
	{"export", "write a map as a GeoJSON feature collection", runExport},
	{"railways", "list the railways visible in a viewport", runRailways},
	{"render", "print the render output for a viewport as JSON", runRender},
	{"tiles", "render a grid of viewports into a directory", runTiles},
	{"validate", "load maps and check their integrity", runValidate},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rerail COMMAND [flags] ARGS")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.usage)
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("rerail: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := os.Args[1]
	for _, c := range commands {
		if c.name == name {
			if err := c.run(os.Args[2:]); err != nil {
				log.Fatal(err)
			}
			return
		}
	}
	usage()
	os.Exit(2)
}
