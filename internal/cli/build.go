package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"svalid/internal/compiler"
	"svalid/internal/config"
	"svalid/internal/engine"
	"svalid/internal/progress"
)

func newBuildCmd() *cobra.Command {
	var force bool
	var check bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile Schematron rule sets to XSLT validation stylesheets",
		Long: `Compile every Schematron (.sch) rule set in the schematron directory into
an XSLT validation stylesheet via the ISO 3-stage pipeline. Sources whose
content digest matches the build cache are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return NewExitError(ExitConfigError)
			}

			if check {
				return runBuildCheck(cfg)
			}
			return runBuild(cfg, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force rebuild even if files are up to date")
	cmd.Flags().BoolVar(&check, "check", false, "Check requirements and show per-source cache status")

	return cmd
}

func newPipeline(cfg *config.Configuration) *compiler.Pipeline {
	return newPipelineWithEngine(cfg, engine.NewExecEngine(cfg.EngineCmd, cfg.TempDir))
}

func newPipelineWithEngine(cfg *config.Configuration, eng engine.Engine) *compiler.Pipeline {
	cache := compiler.NewCache(cfg.CacheDir)
	return compiler.New(eng, cache, cfg.SchematronDir, cfg.StylesheetDir, cfg.OutputDir, cfg.TempDir)
}

func runBuild(cfg *config.Configuration, force bool) error {
	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}

	pipeline := newPipeline(cfg)

	sources, err := pipeline.RuleSources()
	if err == nil && len(sources) > 0 {
		fmt.Printf("Found %d Schematron files in %s\n", len(sources), cfg.SchematronDir)
	}

	display := progress.NewDisplay(progress.DetectTerminalCapabilities(), cfg.ShowProgress)

	start := time.Now()
	batch, err := pipeline.CompileAll(force, &buildProgress{display: display})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}

	fmt.Println()
	fmt.Println("TRANSFORMATION SUMMARY")
	fmt.Printf("Total files: %d\n", len(batch.Results))
	fmt.Printf("Compiled:    %d\n", batch.Count(compiler.StatusCompiled))
	fmt.Printf("Up to date:  %d\n", batch.Count(compiler.StatusSkipped))
	fmt.Printf("Failed:      %d\n", batch.Count(compiler.StatusFailed))
	fmt.Printf("Total time:  %.2f seconds\n", time.Since(start).Seconds())

	if !batch.OK() {
		return NewExitError(ExitBuildFailed)
	}
	fmt.Printf("Results saved to: %s\n", cfg.OutputDir)
	return nil
}

// buildProgress adapts the progress display to batch notifications.
type buildProgress struct {
	display *progress.Display
}

func (b *buildProgress) SourceStarted(source string, index, total int) {
	task := progress.TaskInfo{Name: filepath.Base(source), Number: index, Total: total}
	b.display.StartTask(task, "Transforming")
}

func (b *buildProgress) SourceFinished(result compiler.SourceResult, index, total int) {
	task := progress.TaskInfo{Name: filepath.Base(result.Source), Number: index, Total: total}
	if result.Err != nil {
		b.display.FailTask(task, result.Err)
	} else {
		b.display.CompleteTask(task, result.Status.String())
	}
}

func runBuildCheck(cfg *config.Configuration) error {
	pipeline := newPipeline(cfg)

	fmt.Println("Checking requirements...")
	if err := pipeline.CheckRequirements(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}
	fmt.Println("All requirements are met")

	sources, err := pipeline.RuleSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitConfigError)
	}

	fmt.Printf("\nFound %d Schematron files:\n", len(sources))
	for _, source := range sources {
		status := "up to date"
		if pipeline.NeedsRebuild(source) {
			status = "needs update"
		}
		fmt.Printf("  %s: %s\n", filepath.Base(source), status)
	}

	return nil
}
