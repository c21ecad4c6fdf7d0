package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avela/imgcheck/internal/config"
	"github.com/avela/imgcheck/internal/dispatch"
	"github.com/avela/imgcheck/internal/logger"
	"github.com/avela/imgcheck/internal/probe"
	"github.com/avela/imgcheck/internal/report"
	"github.com/avela/imgcheck/internal/tui"
	"github.com/avela/imgcheck/internal/utils"
)

func runCheck(cfg *config.Config, useTUI bool) {
	table, err := report.ReadCSV(cfg.InputPath)
	if err != nil {
		logger.Fatal("Failed to read input: %v", err)
	}

	urls, err := table.Column(cfg.URLColumn)
	if err != nil {
		logger.Fatal("%v", err)
	}

	prober := probe.New(cfg.Timeout, cfg.Retries)
	dispatcher := dispatch.New(prober, cfg.Workers)

	logger.Info("Checking %d URLs with %d workers (timeout %s)", len(urls), cfg.Workers, cfg.Timeout)

	var results []probe.Outcome
	if useTUI {
		results, err = runWithMonitor(dispatcher, urls)
		if err != nil {
			logger.Fatal("Monitor failed: %v", err)
		}
	} else {
		dispatcher.OnResult = func(index int, url string, outcome probe.Outcome, done, total int) {
			if outcome.Broken() {
				logger.Debug("Row %d broken: %s (%s)", index, url, outcome.Label())
			}
		}
		results = dispatcher.Run(urls)
	}

	broken, checked, brokenCount := report.Collate(table, cfg.StatusColumn, results)

	if err := report.WriteCSV(cfg.OutputPath, broken); err != nil {
		logger.Fatal("Failed to write output: %v", err)
	}

	fmt.Printf("Checked %d rows.\n", checked)
	fmt.Printf("Broken rows: %d\n", brokenCount)
	fmt.Printf("Wrote: %s\n", cfg.OutputPath)
}

// runWithMonitor runs the dispatch behind a live bubbletea monitor.
// Logging switches to file-only so it does not fight the rendered view.
func runWithMonitor(dispatcher *dispatch.Dispatcher, urls []string) ([]probe.Outcome, error) {
	if err := logger.InitFileOnly(); err != nil {
		return nil, err
	}
	defer logger.Close()

	program := tea.NewProgram(tui.NewModel(len(urls)))
	dispatcher.OnResult = func(index int, url string, outcome probe.Outcome, done, total int) {
		program.Send(tui.CheckUpdate{
			Index:  index,
			URL:    url,
			Label:  outcome.Label(),
			Broken: outcome.Broken(),
			Done:   done,
			Total:  total,
		})
	}

	var results []probe.Outcome
	done := make(chan struct{})
	go func() {
		results = dispatcher.Run(urls)
		brokenCount := 0
		for _, outcome := range results {
			if outcome.Broken() {
				brokenCount++
			}
		}
		program.Send(tui.RunComplete{Checked: len(results), Broken: brokenCount})
		close(done)
	}()

	if _, err := program.Run(); err != nil {
		return nil, err
	}
	<-done

	return results, nil
}

func main() {
	logger.Init()
	utils.LoadEnvironment()

	cfg := config.NewConfig()
	cfg.LoadFromEnvironment()

	var (
		timeoutSecs int
		useTUI      bool
	)

	rootCmd := &cobra.Command{
		Use:   "imgcheck",
		Short: "Filter CSV rows whose image URLs are broken",
		Long: `imgcheck bulk-checks the image URLs in a CSV column and writes a filtered
CSV containing only the rows whose URL is broken: an HTTP 4xx/5xx status,
a blank URL, or a persistent network failure.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg.Timeout = time.Duration(timeoutSecs) * time.Second

			if err := cfg.Validate(); err != nil {
				logger.Fatal("Invalid configuration: %v", err)
			}

			runCheck(cfg, useTUI)
		},
	}

	rootCmd.Flags().StringVarP(&cfg.InputPath, "input", "i", "", "Path to input CSV")
	rootCmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", "", "Path to write filtered CSV")
	rootCmd.Flags().StringVarP(&cfg.URLColumn, "column", "c", cfg.URLColumn, "Column name containing the image URL")
	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Max concurrent checks")
	rootCmd.Flags().IntVarP(&timeoutSecs, "timeout", "t", int(cfg.Timeout/time.Second), "Per-request timeout in seconds")
	rootCmd.Flags().BoolVarP(&useTUI, "tui", "", false, "Show a live progress monitor")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagRequired("output")

	// Add a report command
	var (
		reportInput  string
		reportOutput string
	)
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Render a PDF report from a broken-rows CSV",
		Long:  `Render a previously written broken-rows CSV as a PDF summary document.`,
		Run: func(cmd *cobra.Command, args []string) {
			table, err := report.ReadCSV(reportInput)
			if err != nil {
				logger.Fatal("Failed to read input: %v", err)
			}

			if err := report.WritePDF(reportOutput, table, cfg.URLColumn, cfg.StatusColumn); err != nil {
				logger.Fatal("Failed to write PDF report: %v", err)
			}

			logger.Info("PDF report written: %s", reportOutput)
		},
	}
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "Path to broken-rows CSV")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Path to write PDF report")
	reportCmd.Flags().StringVarP(&cfg.URLColumn, "column", "c", cfg.URLColumn, "Column name containing the image URL")
	reportCmd.MarkFlagRequired("input")
	reportCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}
