package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/format"
)

var (
	leadsLocation []string
	leadsIndustry []string
	leadsSize     []string
	leadsRoles    []string
	leadsFounded  string
	leadsRevenue  string
	leadsPage     int
	leadsLimit    int
	leadsSave     bool
	leadsJSON     bool

	leadsClear bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Search and manage leads",
}

var leadsSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search leads across selected sources",
	Long: `Search the lead API across every selected source that is configured.

Examples:
  leadscout leads search fintech --location London --size 50-200
  leadscout leads search --role CTO --limit 50 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLeadsSearch,
}

var leadsSavedCmd = &cobra.Command{
	Use:   "saved [source-id]",
	Short: "List leads saved locally",
	Long: `List leads saved with 'leads search --save', optionally for one source.

With --clear the saved leads are removed instead of listed.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSourceIDs,
	RunE:              runLeadsSaved,
}

func init() {
	f := leadsSearchCmd.Flags()
	f.StringSliceVar(&leadsLocation, "location", nil, "filter by location (repeatable)")
	f.StringSliceVar(&leadsIndustry, "industry", nil, "filter by industry (repeatable)")
	f.StringSliceVar(&leadsSize, "size", nil, "filter by company size (repeatable)")
	f.StringSliceVar(&leadsRoles, "role", nil, "filter by contact role (repeatable)")
	f.StringVar(&leadsFounded, "founded", "", "filter by founding year range")
	f.StringVar(&leadsRevenue, "revenue", "", "filter by revenue range")
	f.IntVar(&leadsPage, "page", 1, "result page")
	f.IntVarP(&leadsLimit, "limit", "n", 20, "results per page")
	f.BoolVar(&leadsSave, "save", false, "save the results locally")
	f.BoolVar(&leadsJSON, "json", false, "output results as JSON")
	leadsSavedCmd.Flags().BoolVar(&leadsClear, "clear", false, "remove the saved leads")
	leadsCmd.AddCommand(leadsSearchCmd)
	leadsCmd.AddCommand(leadsSavedCmd)
	rootCmd.AddCommand(leadsCmd)
}

func runLeadsSearch(cmd *cobra.Command, args []string) error {
	if leadService == nil {
		return fmt.Errorf("lead %w", errServiceNotConfigured)
	}

	params := domain.LeadSearchParams{
		Location:    leadsLocation,
		Industry:    leadsIndustry,
		CompanySize: leadsSize,
		Founded:     leadsFounded,
		Revenue:     leadsRevenue,
		Roles:       leadsRoles,
		Page:        leadsPage,
		Limit:       leadsLimit,
	}
	if len(args) == 1 {
		params.Query = args[0]
	}

	ctx := commandContext(cmd)
	page, err := leadService.Search(ctx, params)
	if errors.Is(err, domain.ErrNoConfiguredSources) {
		return fmt.Errorf("%w: sources are configured and selected per session; "+
			"use 'leadscout shell' or 'leadscout tui' to configure, select and search together", err)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if leadsSave && len(page.Leads) > 0 {
		if err := leadService.Save(ctx, page.Leads); err != nil {
			return fmt.Errorf("failed to save leads: %w", err)
		}
	}

	if leadsJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(page.Leads) == 0 {
		cmd.Println("No leads found.")
		return nil
	}
	cmd.Println(leadTable(page.Leads).String())
	cmd.Printf("Page %d, %d of %d leads.\n", params.Page, len(page.Leads), page.Total)
	if leadsSave {
		cmd.Printf("Saved %d leads.\n", len(page.Leads))
	}
	return nil
}

func runLeadsSaved(cmd *cobra.Command, args []string) error {
	if leadService == nil {
		return fmt.Errorf("lead %w", errServiceNotConfigured)
	}

	sourceID := ""
	if len(args) == 1 {
		sourceID = args[0]
	}

	if leadsClear {
		n, err := leadService.ClearSaved(commandContext(cmd), sourceID)
		if err != nil {
			return fmt.Errorf("failed to clear saved leads: %w", err)
		}
		cmd.Printf("Removed %d saved leads.\n", n)
		return nil
	}

	saved, err := leadService.Saved(commandContext(cmd), sourceID)
	if err != nil {
		return fmt.Errorf("failed to list saved leads: %w", err)
	}
	if len(saved) == 0 {
		cmd.Println("No saved leads.")
		return nil
	}

	leads := make([]domain.Lead, len(saved))
	for i := range saved {
		leads[i] = saved[i].Lead
	}
	cmd.Println(leadTable(leads).String())
	return nil
}

func leadTable(leads []domain.Lead) *format.Builder {
	t := format.NewTable(tableMode()).
		Header("Company", "Industry", "Location", "Size", "Source", "Contacts", "Confidence").
		MaxWidth(1, 40)
	for i := range leads {
		l := &leads[i]
		names := make([]string, 0, len(l.Contacts))
		for _, c := range l.Contacts {
			names = append(names, c.Name)
		}
		t.Row(l.CompanyName, l.Industry, l.Location, l.Size, l.Source,
			strings.Join(names, ", "), fmt.Sprintf("%.0f%%", l.Confidence*100))
	}
	return t
}
