// svalid - Schematron compilation and validation toolkit

// Package cli provides Cobra-based CLI commands for the svalid validation
// toolkit: compiling Schematron rule sets to XSLT (build), validating XML
// documents against the compiled rule sets (validate), and inspecting
// build-cache status (build --check).
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "svalid",
	Short: "fast Schematron validation",
	Long: `svalid - fast Schematron validation

Compiles Schematron rule documents into XSLT validation stylesheets through
the ISO 3-stage pipeline, caches builds by content digest, and validates XML
documents against the compiled rule sets with severity-classified reports.`,
	Example: `  # Compile all Schematron rule sets (cached, digest-gated)
  svalid build

  # Force a full rebuild
  svalid build --force

  # Show requirements and per-source cache status
  svalid build --check

  # Validate every XML document in a directory
  svalid validate --samples-dir ./samples

  # Validate a single document
  svalid validate --file invoice.xml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".svalid/config.json", "Path to config file")

	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newValidateCmd())
}
