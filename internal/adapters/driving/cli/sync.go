package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/format"
)

var syncCmd = &cobra.Command{
	Use:   "sync [source-id]",
	Short: "Ask the lead API to sync a configured source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

var statsCmd = &cobra.Command{
	Use:   "stats [source-id]",
	Short: "Show usage statistics for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	syncCmd.ValidArgsFunction = completeSourceIDs
	statsCmd.ValidArgsFunction = completeSourceIDs
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statsCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if leadService == nil {
		return fmt.Errorf("lead %w", errServiceNotConfigured)
	}

	cmd.Printf("Syncing %s...\n", args[0])
	result, err := leadService.Sync(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Status: %s\n", result.Status)
	if result.Message != "" {
		cmd.Println(result.Message)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	if leadService == nil {
		return fmt.Errorf("lead %w", errServiceNotConfigured)
	}

	stats, err := leadService.Stats(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	lastSync := stats.LastSync
	if lastSync == "" {
		lastSync = "never"
	}
	t := format.NewTable(tableMode()).Header("Metric", "Value").
		Row("Total leads", stats.TotalLeads).
		Row("Last sync", lastSync).
		Row("Requests remaining", fmt.Sprintf("%d of %d", stats.RequestsRemaining, stats.RequestsLimit))
	cmd.Println(t.String())
	return nil
}
