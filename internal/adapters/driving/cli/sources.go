package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/format"
)

var (
	sourcesSelectedOnly bool
	sourcesJSON         bool
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage lead data sources",
	Long: `List the supported data sources, inspect their configuration and choose
which sources lead searches run against.`,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List data sources",
	Args:  cobra.NoArgs,
	RunE:  runSourcesList,
}

var sourcesShowCmd = &cobra.Command{
	Use:   "show [source-id]",
	Short: "Show a source's descriptor and configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesShow,
}

var sourcesSelectCmd = &cobra.Command{
	Use:   "select [source-id...]",
	Short: "Replace the set of selected sources",
	Long: `Select the sources lead searches run against. The previous selection is
replaced; run with no arguments to clear it.`,
	RunE: runSourcesSelect,
}

var sourcesToggleCmd = &cobra.Command{
	Use:   "toggle [source-id]",
	Short: "Select or deselect one source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesToggle,
}

var sourcesFiltersCmd = &cobra.Command{
	Use:   "filters [source-id]",
	Short: "Show the filter values a source accepts",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesFilters,
}

func init() {
	sourcesListCmd.Flags().BoolVar(&sourcesSelectedOnly, "selected", false, "only list selected sources")
	sourcesListCmd.Flags().BoolVar(&sourcesJSON, "json", false, "output sources as JSON")
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesShowCmd)
	sourcesCmd.AddCommand(sourcesSelectCmd)
	sourcesCmd.AddCommand(sourcesToggleCmd)
	sourcesCmd.AddCommand(sourcesFiltersCmd)
	rootCmd.AddCommand(sourcesCmd)

	for _, c := range []*cobra.Command{sourcesShowCmd, sourcesSelectCmd, sourcesToggleCmd, sourcesFiltersCmd} {
		c.ValidArgsFunction = completeSourceIDs
	}
}

type sourceJSON struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Status       domain.SourceStatus `json:"status"`
	Selected     bool                `json:"selected"`
	Availability domain.Availability `json:"availability"`
	Error        string              `json:"error,omitempty"`
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if sourceConfigService == nil {
		return fmt.Errorf("source config %w", errServiceNotConfigured)
	}

	states, err := sourceConfigService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if sourcesSelectedOnly {
		selected := states[:0]
		for _, st := range states {
			if st.Selected {
				selected = append(selected, st)
			}
		}
		states = selected
	}

	if sourcesJSON {
		out := make([]sourceJSON, 0, len(states))
		for _, st := range states {
			out = append(out, sourceJSON{
				ID:           st.Descriptor.ID,
				Name:         st.Descriptor.Name,
				Status:       st.Config.Status,
				Selected:     st.Selected,
				Availability: st.Descriptor.Availability,
				Error:        st.Config.Error,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sources: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(states) == 0 {
		cmd.Println("No sources.")
		return nil
	}

	t := format.NewTable(tableMode()).Header("ID", "Name", "Status", "Selected", "Availability")
	for _, st := range states {
		t.Row(st.Descriptor.ID, st.Descriptor.Name, st.Config.Status.Label(),
			yesNo(st.Selected), st.Descriptor.Availability.Label())
	}
	cmd.Println(t.String())
	return nil
}

func runSourcesShow(cmd *cobra.Command, args []string) error {
	if sourceConfigService == nil || sourceRegistry == nil {
		return fmt.Errorf("source config %w", errServiceNotConfigured)
	}

	d, err := sourceRegistry.Get(args[0])
	if err != nil {
		return err
	}
	cfg, err := sourceConfigService.Get(commandContext(cmd), d.ID)
	if err != nil {
		return fmt.Errorf("failed to get source config: %w", err)
	}

	cmd.Printf("%s (%s)\n", d.Name, d.ID)
	cmd.Printf("  %s\n\n", d.Description)
	cmd.Printf("  Availability:  %s\n", d.Availability.Label())
	cmd.Printf("  Response time: %s\n", d.AvgResponseTime)
	cmd.Printf("  Capabilities:  %s\n", strings.Join(d.Capabilities, ", "))
	cmd.Printf("  Status:        %s\n", cfg.Status.Label())
	if cfg.Error != "" {
		cmd.Printf("  Error:         %s\n", cfg.Error)
	}
	if cfg.RateLimit != nil {
		cmd.Printf("  Rate limit:    %d/min, %d max\n", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.MaxRequests)
	}
	if cfg.LastSync != nil {
		cmd.Printf("  Last sync:     %s\n", cfg.LastSync.Format(time.RFC3339))
	}
	if cfg.Filters != nil && len(cfg.Filters.Roles) > 0 {
		cmd.Printf("  Roles:         %s\n", strings.Join(cfg.Filters.Roles, ", "))
	}

	if d.Flow == domain.FlowRoleSelection {
		cmd.Println("\nConfigure with: leadscout roles configure [role...]")
		return nil
	}

	cmd.Println("\nCredentials:")
	for _, f := range d.Fields() {
		value, ok := cfg.Credentials[f.Key]
		switch {
		case !ok || value == "":
			value = "(not set)"
		case f.Secret:
			value = maskAPIKey(value)
		}
		cmd.Printf("  %-14s %s\n", f.Label+":", value)
	}
	return nil
}

func runSourcesSelect(cmd *cobra.Command, args []string) error {
	if sourceConfigService == nil {
		return fmt.Errorf("source config %w", errServiceNotConfigured)
	}

	if err := sourceConfigService.SetSelection(commandContext(cmd), args); err != nil {
		return fmt.Errorf("failed to select sources: %w", err)
	}
	if len(args) == 0 {
		cmd.Println("Selection cleared.")
		return nil
	}
	ids := append([]string(nil), args...)
	sort.Strings(ids)
	cmd.Printf("Selected: %s\n", strings.Join(ids, ", "))
	return nil
}

func runSourcesToggle(cmd *cobra.Command, args []string) error {
	if sourceConfigService == nil {
		return fmt.Errorf("source config %w", errServiceNotConfigured)
	}

	selected, err := sourceConfigService.Toggle(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to toggle source: %w", err)
	}
	if selected {
		cmd.Printf("Selected %s\n", args[0])
	} else {
		cmd.Printf("Deselected %s\n", args[0])
	}
	return nil
}

func runSourcesFilters(cmd *cobra.Command, args []string) error {
	if leadService == nil {
		return fmt.Errorf("lead %w", errServiceNotConfigured)
	}

	opts, err := leadService.Filters(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get filters: %w", err)
	}

	printList(cmd, "Locations", opts.Locations)
	printList(cmd, "Industries", opts.Industries)
	printList(cmd, "Company sizes", opts.CompanySizes)
	return nil
}

func printList(cmd *cobra.Command, title string, values []string) {
	cmd.Printf("%s:\n", title)
	if len(values) == 0 {
		cmd.Println("  (none)")
		return
	}
	for _, v := range values {
		cmd.Printf("  - %s\n", v)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// completeSourceIDs offers registry ids for source-id arguments. Commands
// taking one id stop completing once it is given.
func completeSourceIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if sourceRegistry == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) > 0 && cmd != sourcesSelectCmd {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := slices.DeleteFunc(sourceRegistry.IDs(), func(id string) bool {
		return slices.Contains(args, id)
	})
	return ids, cobra.ShellCompDirectiveNoFileComp
}
