package runs

import (
	"fmt"
	"os"

	"github.com/dtnitsch/site-profiler/internal/analyze"
	"github.com/dtnitsch/site-profiler/internal/common"
	"github.com/dtnitsch/site-profiler/pkg/db"
	"github.com/urfave/cli/v2"
)

// ListAction prints recent batch runs.
func ListAction(c *cli.Context) error {
	logger := analyze.NewLogger(c.Bool("quiet"))

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}

	return printOut(c, runs)
}

// ShowAction prints stored analyses, either the latest for a site URL or all
// analyses belonging to a run.
func ShowAction(c *cli.Context) error {
	logger := analyze.NewLogger(c.Bool("quiet"))

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	fields := c.String("fields")

	if runID := c.Int64("run"); runID > 0 {
		analyses, err := database.GetRunAnalyses(runID)
		if err != nil {
			logger.Error("failed to get run analyses", "run_id", runID, "error", err)
			os.Exit(2)
		}
		output := make([]map[string]interface{}, 0, len(analyses))
		for _, a := range analyses {
			output = append(output, common.FilterResultFields(a, fields))
		}
		return printOut(c, output)
	}

	rawURL := c.Args().First()
	if rawURL == "" {
		rawURL = c.String("url")
	}
	if rawURL == "" {
		return fmt.Errorf("nothing to show (pass a URL or --run)")
	}

	sanitized, invalid := common.SanitizeAndValidateURLs([]string{rawURL})
	if len(invalid) > 0 || len(sanitized) == 0 {
		logger.Error("invalid URL", "url", rawURL)
		os.Exit(2)
	}

	analysis, err := database.GetAnalysis(sanitized[0])
	if err != nil {
		logger.Error("failed to get analysis", "url", sanitized[0], "error", err)
		os.Exit(1)
	}
	return printOut(c, common.FilterResultFields(analysis, fields))
}

func printOut(c *cli.Context, v interface{}) error {
	outputData, err := common.EncodeOutput(v, c.String("format"))
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(outputData))
	return nil
}
