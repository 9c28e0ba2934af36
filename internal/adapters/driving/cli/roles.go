package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
	"github.com/custodia-labs/leadscout/internal/format"
)

// roleSearchTimeout bounds how long roles search waits for results.
var roleSearchTimeout = 10 * time.Second

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Browse job roles and configure role-based targeting",
	Long: `Browse the role catalogue and configure the role-based source, which
targets leads by the job titles of their decision makers.`,
}

var rolesPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List frequently targeted roles",
	Args:  cobra.NoArgs,
	RunE:  runRolesPopular,
}

var rolesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List role categories",
	Args:  cobra.NoArgs,
	RunE:  runRolesCategories,
}

var rolesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search job titles",
	Args:  cobra.ExactArgs(1),
	RunE:  runRolesSearch,
}

var rolesConfigureCmd = &cobra.Command{
	Use:   "configure [role...]",
	Short: "Target roles with the role-based source",
	Long: `Select the target roles, fetch their statistics and mark the role-based
source configured with them.

Example:
  leadscout roles configure "Chief Technology Officer" "VP Engineering"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRolesConfigure,
}

func init() {
	rolesCmd.AddCommand(rolesPopularCmd)
	rolesCmd.AddCommand(rolesCategoriesCmd)
	rolesCmd.AddCommand(rolesSearchCmd)
	rolesCmd.AddCommand(rolesConfigureCmd)
	rootCmd.AddCommand(rolesCmd)
}

// openSelector opens a role selector and loads the catalogue.
// The caller must Close it.
func openSelector(ctx context.Context) (driving.RoleSelector, error) {
	if configurationService == nil {
		return nil, fmt.Errorf("configuration %w", errServiceNotConfigured)
	}
	sel := configurationService.OpenRoleSelector()
	if err := sel.Load(ctx); err != nil {
		sel.Close()
		return nil, fmt.Errorf("%s: %w", sel.Banner(), err)
	}
	return sel, nil
}

func runRolesPopular(cmd *cobra.Command, _ []string) error {
	sel, err := openSelector(commandContext(cmd))
	if err != nil {
		return err
	}
	defer sel.Close()

	popular := sel.Popular()
	if len(popular) == 0 {
		cmd.Println("No popular roles.")
		return nil
	}
	for _, role := range popular {
		cmd.Printf("  - %s\n", role)
	}
	return nil
}

func runRolesCategories(cmd *cobra.Command, _ []string) error {
	sel, err := openSelector(commandContext(cmd))
	if err != nil {
		return err
	}
	defer sel.Close()

	categories := sel.Categories()
	if len(categories) == 0 {
		cmd.Println("No role categories.")
		return nil
	}

	t := format.NewTable(tableMode()).Header("ID", "Name", "Roles").MaxWidth(3, 60)
	for _, c := range categories {
		t.Row(c.ID, c.Name, strings.Join(c.Roles, ", "))
	}
	cmd.Println(t.String())
	return nil
}

func runRolesSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(args[0])
	if len(query) <= domain.RoleSearchMinLength {
		return fmt.Errorf("%w: query must be longer than %d characters", domain.ErrInvalidInput,
			domain.RoleSearchMinLength)
	}

	if configurationService == nil {
		return fmt.Errorf("configuration %w", errServiceNotConfigured)
	}
	sel := configurationService.OpenRoleSelector()
	defer sel.Close()

	ctx, cancel := context.WithTimeout(commandContext(cmd), roleSearchTimeout)
	defer cancel()

	sel.Input(query)
	select {
	case update, ok := <-sel.Updates():
		if !ok {
			return errors.New("role search stopped")
		}
		if update.Err != nil {
			return fmt.Errorf("role search failed: %w", update.Err)
		}
		if len(update.Roles) == 0 {
			cmd.Println("No matching roles.")
			return nil
		}
		for _, role := range update.Roles {
			cmd.Printf("  - %s\n", role)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("role search: %w", ctx.Err())
	}
}

func runRolesConfigure(cmd *cobra.Command, args []string) error {
	if configurationService == nil {
		return fmt.Errorf("configuration %w", errServiceNotConfigured)
	}
	sel := configurationService.OpenRoleSelector()
	defer sel.Close()

	for _, role := range args {
		sel.AddRole(role)
	}

	stats, err := sel.Save(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to save roles: %w", err)
	}

	cmd.Printf("Role-based source configured with %d roles.\n\n", len(sel.Selected()))
	printRoleStats(cmd, stats)
	return nil
}

func printRoleStats(cmd *cobra.Command, stats domain.RoleStats) {
	cmd.Printf("Total leads:       %d\n", stats.TotalLeads)
	cmd.Printf("Average seniority: %s\n", stats.AverageSeniority)

	if len(stats.TopIndustries) > 0 {
		cmd.Println()
		t := format.NewTable(tableMode()).Header("Industry", "Leads")
		for _, ic := range stats.TopIndustries {
			t.Row(ic.Industry, ic.Count)
		}
		cmd.Println(t.String())
	}

	if len(stats.RoleDistribution) > 0 {
		cmd.Println()
		t := format.NewTable(tableMode()).Header("Role", "Share")
		for _, rs := range stats.RoleDistribution {
			t.Row(rs.Role, fmt.Sprintf("%.1f%%", rs.Percentage))
		}
		cmd.Println(t.String())
	}
}
