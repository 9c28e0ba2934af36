package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for leadscout.

The TUI lets you select and configure data sources, pick target roles and
search leads with keyboard navigation.

Controls:
  ↑/k, ↓/j - Navigate
  Space    - Select / deselect a source
  Enter    - Configure / Search / Select
  Tab      - Next field
  Ctrl+S   - Save
  Esc      - Back / Cancel
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	startWatcher(ctx)

	ports := tui.NewPorts(sourceConfigService, configurationService, leadService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
