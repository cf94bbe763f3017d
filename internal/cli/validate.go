package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"svalid/internal/config"
	"svalid/internal/engine"
	"svalid/internal/progress"
	"svalid/internal/report"
	"svalid/internal/svrl"
	"svalid/internal/validator"
)

func newValidateCmd() *cobra.Command {
	var samplesDir string
	var singleFile string
	var forceRebuild bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate XML documents against compiled Schematron rule sets",
		Long: `Validate XML documents against every compiled validation stylesheet.
Rule sets are rebuilt first when their Schematron source changed. Each
document gets a JSON report in the results directory; the exit code is
non-zero when any document is invalid or any validation failed to run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return NewExitError(ExitConfigError)
			}
			return runValidate(cfg, samplesDir, singleFile, forceRebuild)
		},
	}

	cmd.Flags().StringVar(&samplesDir, "samples-dir", "./samples", "Directory containing XML documents to validate")
	cmd.Flags().StringVar(&singleFile, "file", "", "Validate a single XML document instead of a directory")
	cmd.Flags().BoolVarP(&forceRebuild, "force-rebuild", "f", false, "Force rebuild of XSLT files from Schematron")

	return cmd
}

func runValidate(cfg *config.Configuration, samplesDir, singleFile string, forceRebuild bool) error {
	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}

	// Shared long-lived engine for both compilation and validation.
	eng := engine.NewExecEngine(cfg.EngineCmd, cfg.TempDir)

	// Make sure the compiled stylesheets are current before validating.
	fmt.Println("Checking/generating XSLT files from Schematron...")
	pipeline := newPipelineWithEngine(cfg, eng)
	batch, err := pipeline.CompileAll(forceRebuild, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}
	if !batch.OK() {
		for _, r := range batch.Results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", r.StatusLine())
			}
		}
		return NewExitError(ExitBuildFailed)
	}

	stylesheets, err := compiledStylesheets(cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}
	fmt.Printf("Found %d XSLT files\n", len(stylesheets))

	documents, err := collectDocuments(samplesDir, singleFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}

	classifier := svrl.NewClassifier(svrl.KeywordSets{
		Fatal:   cfg.FatalKeywords,
		Error:   cfg.ErrorKeywords,
		Warning: cfg.WarningKeywords,
		Info:    cfg.InfoKeywords,
	})
	executor := validator.NewExecutor(eng, classifier)
	writer := report.NewWriter(cfg.ResultsDir)
	display := progress.NewDisplay(progress.DetectTerminalCapabilities(), cfg.ShowProgress)

	var reports []*validator.DocumentReport
	start := time.Now()
	for i, doc := range documents {
		task := progress.TaskInfo{Name: filepath.Base(doc), Number: i + 1, Total: len(documents)}
		display.StartTask(task, "Validating")

		docReport := executor.ValidateDocument(doc, stylesheets)
		reports = append(reports, docReport)

		if path := writer.Write(docReport); path != "" {
			display.CompleteTask(task, fmt.Sprintf("report: %s", filepath.Base(path)))
		} else {
			display.CompleteTask(task, "")
		}
	}
	elapsed := time.Since(start)

	summary := validator.Summarize(reports, elapsed, validator.PerformanceGoal{
		SizeMB:      cfg.GoalSizeMB,
		TimeSeconds: cfg.GoalTimeSeconds,
	})

	fmt.Println()
	report.PrintRunSummary(os.Stdout, summary, executor.Cache.Hits())
	fmt.Println("\nDetailed Results:")
	for _, r := range reports {
		report.PrintDocumentResult(os.Stdout, r)
	}

	if !summary.AllValid() {
		return NewExitError(ExitInvalid)
	}
	return nil
}

// compiledStylesheets lists the compiled .xsl artifacts, sorted for a
// deterministic rule-set order.
func compiledStylesheets(outputDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(outputDir, "*.xsl"))
	if err != nil {
		return nil, fmt.Errorf("listing XSLT files: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no XSLT files found in %s", outputDir)
	}
	sort.Strings(matches)
	return matches, nil
}

// collectDocuments resolves the batch or single-document input mode.
func collectDocuments(samplesDir, singleFile string) ([]string, error) {
	if singleFile != "" {
		return []string{singleFile}, nil
	}

	if _, err := os.Stat(samplesDir); err != nil {
		return nil, fmt.Errorf("samples directory not found: %s", samplesDir)
	}

	matches, err := filepath.Glob(filepath.Join(samplesDir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("listing XML files: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no XML files found in %s", samplesDir)
	}
	sort.Strings(matches)
	return matches, nil
}
