package cmd

import (
	"github.com/spf13/cobra"
	"github.com/willhack/kicanvas/internal/viewer"
)

var (
	viewTheme string
	viewDark  bool
)

var viewCmd = &cobra.Command{
	Use:   "view [schematic_file]",
	Short: "Open the interactive schematic viewer",
	Long: `Open a schematic in the interactive viewer.

Without a file argument the viewer starts empty; use Ctrl+O (Cmd+O on
macOS) to open a file. Keyboard shortcuts:
  Ctrl+O    open file
  Ctrl+T    toggle light/dark theme
  F         fit schematic to window
  M         mirror view horizontally
  R         rotate view by 90 degrees
  Q, Esc    quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewTheme, "theme", "", "path to a YAML color theme file")
	viewCmd.Flags().BoolVar(&viewDark, "dark", false, "start with the dark built-in theme")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	opts := viewer.Options{
		ThemePath: viewTheme,
		Dark:      viewDark,
	}
	if len(args) > 0 {
		opts.FilePath = args[0]
	}
	viewer.Run(opts)
	return nil
}
