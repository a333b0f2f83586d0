// pepdex builds sparse suffix array indexes over protein databases and
// queries them for peptides.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := cli.NewApp()
	app.Name = "pepdex"
	app.Usage = "build and query sparse suffix array indexes over protein databases"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "construct an index from a protein database file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "database, d",
					Usage: "*protein database `FILE` (tab-separated)",
				},
				cli.StringFlag{
					Name:  "output, o",
					Usage: "*index output `FILE`",
				},
				cli.StringFlag{
					Name:  "store, s",
					Usage: " protein metadata SQLite `FILE` to fill",
				},
				cli.StringFlag{
					Name:  "taxonomy, t",
					Usage: " taxonomy `FILE` used to validate protein taxa",
				},
				cli.UintFlag{
					Name:  "sparseness, k",
					Value: 1,
					Usage: " keep every `N`-th suffix",
				},
				cli.StringFlag{
					Name:  "algorithm, a",
					Value: "sais",
					Usage: " construction `ALGORITHM` [sais|divsufsort]",
				},
				cli.BoolFlag{
					Name:  "uncompressed, u",
					Usage: " store the suffix array as raw 64-bit values (mappable)",
				},
			},
			Action: runBuild,
		},
		{
			Name:  "query",
			Usage: "search peptides against a built index",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "index, i",
					Usage: "*index `FILE` produced by build",
				},
				cli.StringFlag{
					Name:  "store, s",
					Usage: "*protein metadata SQLite `FILE`",
				},
				cli.StringFlag{
					Name:  "peptides, p",
					Value: "-",
					Usage: " peptide list `FILE`, one per line (- for stdin)",
				},
				cli.StringFlag{
					Name:  "taxonomy, t",
					Usage: " taxonomy `FILE`; adds a consensus taxon per peptide",
				},
				cli.StringFlag{
					Name:  "method, m",
					Value: "lca*",
					Usage: " taxon aggregation `METHOD` [lca|lca*]",
				},
				cli.IntFlag{
					Name:  "cutoff, c",
					Value: 10000,
					Usage: " maximum number of matches processed per peptide",
				},
				cli.BoolFlag{
					Name:  "equate-il, e",
					Usage: " make isoleucine and leucine match each other",
				},
				cli.BoolFlag{
					Name:  "tryptic",
					Usage: " keep only tryptic matches",
				},
				cli.BoolFlag{
					Name:  "mapped",
					Usage: " serve the suffix array from a memory-mapped file",
				},
			},
			Action: runQuery,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
