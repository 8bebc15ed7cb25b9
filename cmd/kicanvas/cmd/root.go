package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kicanvas",
	Short: "kicanvas - KiCad schematic viewer and inspection tools",
	Long: `kicanvas renders and inspects KiCad schematic files (.kicad_sch).

Examples:
  kicanvas view design.kicad_sch      # Open the interactive viewer
  kicanvas info design.kicad_sch      # Show schematic summary
  kicanvas info design.kicad_sch R1   # Show details for component R1
  kicanvas fields design.kicad_sch    # Dump computed text field placement
  kicanvas probe design.kicad_sch     # Low-level s-expression diagnostics`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
