// Package cli provides the cobra command tree for leadscout.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/format"
	"github.com/custodia-labs/leadscout/internal/logger"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

// version is set at build time.
var version = "dev"

var (
	verbose      bool
	outputFormat string
)

// Services are shared by every command.
var (
	sourceRegistry       driving.SourceRegistry
	sourceConfigService  driving.SourceConfigService
	configurationService driving.ConfigurationService
	leadService          driving.LeadService
	settingsService      driving.SettingsService
	settingsWatcher      func(ctx context.Context)
)

// errServiceNotConfigured is returned by commands run before SetServices.
var errServiceNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "leadscout",
	Short: "Find and qualify B2B leads across data sources",
	Long: `leadscout configures lead-generation data sources, targets buyer roles
and searches the lead API across every selected source.

Source configuration and selection last for one session. Run 'leadscout shell'
to configure, select and search in one session, or 'leadscout tui' for the
interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		_, err := format.ParseMode(outputFormat)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(format.Table),
		"table output format (table, markdown, csv)")
}

// Services groups the driving ports the commands use.
type Services struct {
	Registry      driving.SourceRegistry
	Sources       driving.SourceConfigService
	Configuration driving.ConfigurationService
	Leads         driving.LeadService
	Settings      driving.SettingsService

	// Watch, when set, follows settings changes until ctx is done.
	// Long-running commands start it.
	Watch func(ctx context.Context)
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	sourceRegistry = s.Registry
	sourceConfigService = s.Sources
	configurationService = s.Configuration
	leadService = s.Leads
	settingsService = s.Settings
	settingsWatcher = s.Watch
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// tableMode returns the validated --output mode.
func tableMode() format.Mode {
	m, err := format.ParseMode(outputFormat)
	if err != nil {
		return format.Table
	}
	return m
}

// startWatcher follows settings changes for the lifetime of ctx.
func startWatcher(ctx context.Context) {
	if settingsWatcher != nil {
		go settingsWatcher(ctx)
	}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
