package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/site-profiler/internal/analyze"
	"github.com/dtnitsch/site-profiler/internal/batch"
	"github.com/dtnitsch/site-profiler/internal/runs"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "site-profiler",
		Usage: "Crawl company websites and generate structured business profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to YAML config file",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log errors",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "json",
				Usage: "Output format: json or yaml",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Analyze a single site and print its profile",
				ArgsUsage: "<url>",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:  "url",
						Usage: "Site URL (alternative to the positional argument)",
					},
				),
				Action: analyze.AnalyzeAction,
			},
			{
				Name:  "batch",
				Usage: "Analyze a list of sites sequentially with checkpointed resume",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:  "sites",
						Usage: "Comma-separated site URLs",
					},
					&cli.StringFlag{
						Name:  "sites-file",
						Usage: "File with one site URL per line (# comments allowed)",
					},
					&cli.StringFlag{
						Name:  "checkpoint",
						Usage: "Checkpoint file path (default: <output-dir>/checkpoint.json)",
					},
				),
				Action: batch.BatchAction,
			},
			{
				Name:  "runs",
				Usage: "List recent batch runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Maximum runs to list",
					},
				},
				Action: runs.ListAction,
			},
			{
				Name:      "show",
				Usage:     "Show stored analyses for a site or a run",
				ArgsUsage: "[url]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "Site URL (alternative to the positional argument)",
					},
					&cli.Int64Flag{
						Name:  "run",
						Usage: "Show all analyses for this run ID",
					},
					&cli.StringFlag{
						Name:  "fields",
						Usage: "Comma-separated JSON fields to include",
					},
				},
				Action: runs.ShowAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}

// pipelineFlags are shared by commands that run the analysis pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "Directory for analysis output files",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for cached page fetches (empty disables caching)",
		},
		&cli.StringFlag{
			Name:  "max-age",
			Value: "24h",
			Usage: "Maximum cache age before refetching",
		},
		&cli.BoolFlag{
			Name:  "force-fetch",
			Usage: "Ignore cached pages and refetch everything",
		},
		&cli.IntFlag{
			Name:  "max-urls",
			Usage: "Maximum priority URLs to fetch per site",
		},
		&cli.StringFlag{
			Name:  "provider",
			Usage: "Text generation provider (ollama or cloud)",
		},
		&cli.StringFlag{
			Name:  "ollama-model",
			Usage: "Model name for the ollama provider",
		},
	}
}
