package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bitcoinsearch/bitdevs-radar/internal/radar"
)

func main() {
	app := &cli.App{
		Name:  "bitdevs-radar",
		Usage: "Scan BitDevs meetup repositories and generate resource views",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "bitdevs.yaml",
				Usage: "path to the repository list config",
			},
			&cli.StringFlag{
				Name:  "exclude",
				Value: "exclude_domains.yaml",
				Usage: "path to the excluded domains list",
			},
			&cli.StringFlag{
				Name:  "detailed-output",
				Value: "bitdevs_resources.json",
				Usage: "output path for the detailed JSON view",
			},
			&cli.StringFlag{
				Name:  "detailed-input",
				Usage: "pre-existing detailed JSON; if set, skips scanning",
			},
			&cli.StringFlag{
				Name:  "category-output",
				Value: "bitdevs_resources.md",
				Usage: "output path for the categorized markdown view",
			},
			&cli.StringFlag{
				Name:  "domain-output",
				Value: "bitdevs_domains.md",
				Usage: "output path for the domain-focused markdown view",
			},
			&cli.StringFlag{
				Name:  "date-output",
				Value: "bitdevs_dates.md",
				Usage: "output path for the date-focused markdown view",
			},
			&cli.StringFlag{
				Name:  "start-date",
				Usage: "only include posts from this date on (YYYY-MM-DD)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: radar.RunAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
