// Command leadscout is the composition root: it builds the driven adapters,
// wires them into the core services and hands those to the CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/leadscout/internal/adapters/driven/config/file"
	"github.com/custodia-labs/leadscout/internal/adapters/driven/leadapi"
	"github.com/custodia-labs/leadscout/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/leadscout/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/leadscout/internal/adapters/driving/cli"
	"github.com/custodia-labs/leadscout/internal/core/ports/driven"
	"github.com/custodia-labs/leadscout/internal/core/services"
	"github.com/custodia-labs/leadscout/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings := services.NewSettingsService(configStore)

	appSettings, err := settings.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	client, err := leadapi.NewClient(leadapi.ConfigFromSettings(appSettings.API))
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	// Saved leads fall back to memory when the database cannot be opened.
	var leadStore driven.LeadStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("lead cache unavailable, using memory: %v", err)
		leadStore = memory.NewLeadStore()
	} else {
		defer store.Close()
		leadStore = store.LeadStore()
	}

	registry := services.NewSourceRegistry()
	configs, err := services.NewSourceConfigService(ctx, registry, memory.NewSourceConfigStore())
	if err != nil {
		return fmt.Errorf("initialising sources: %w", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Registry:      registry,
		Sources:       configs,
		Configuration: services.NewConfigurationService(registry, configs, client, client),
		Leads:         services.NewLeadService(client, configs, leadStore),
		Settings:      settings,
		Watch: func(ctx context.Context) {
			err := configStore.Watch(ctx, func() {
				s, err := settings.Get()
				if err != nil {
					logger.Warn("reload settings: %v", err)
					return
				}
				if err := client.Reconfigure(leadapi.ConfigFromSettings(s.API)); err != nil {
					logger.Warn("reconfigure API client: %v", err)
					return
				}
				logger.Info("API client now using %s", client.BaseURL())
			})
			if err != nil {
				logger.Warn("watch settings: %v", err)
			}
		},
	})

	return cli.Execute(ctx)
}
