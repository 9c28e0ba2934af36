package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/leadscout/internal/core/domain"
	"github.com/custodia-labs/leadscout/internal/core/ports/driving"
)

var configureValues []string

var configureCmd = &cobra.Command{
	Use:   "configure [source-id]",
	Short: "Configure a data source",
	Long: `Walk through a source's configuration steps, submit the credentials to
the lead API and test the connection.

Values can be passed with --set to skip the prompts:
  leadscout configure google --set apiKey=XXXX

Secret values are read without echo when prompted. The role-based source
is configured with 'leadscout roles configure'.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSourceIDs,
	RunE:              runConfigure,
}

func init() {
	configureCmd.Flags().StringArrayVar(&configureValues, "set", nil, "credential value as key=value (repeatable)")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	if configurationService == nil {
		return fmt.Errorf("configuration %w", errServiceNotConfigured)
	}

	values, err := parseAssignments(configureValues)
	if err != nil {
		return err
	}

	w, err := configurationService.OpenWizard(args[0])
	if errors.Is(err, domain.ErrRoleSelectionFlow) {
		return fmt.Errorf("%s is configured with 'leadscout roles configure': %w", args[0], err)
	}
	if err != nil {
		return err
	}
	defer w.Close()

	for key := range values {
		if !w.Descriptor().HasField(key) {
			return fmt.Errorf("%w: %s has no field %q", domain.ErrInvalidInput, args[0], key)
		}
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return runWizard(cmd, w, values, reader)
}

// runWizard fills every step's fields and advances until the wizard submits.
func runWizard(cmd *cobra.Command, w driving.Wizard, values map[string]string, reader *bufio.Reader) error {
	d := w.Descriptor()
	cmd.Printf("Configure %s\n\n", d.Name)

	for {
		step := d.Steps[w.Step()]
		cmd.Printf("Step %d of %d: %s\n", w.Step()+1, len(d.Steps), step.Label)
		if step.Description != "" {
			cmd.Printf("  %s\n", step.Description)
		}

		for _, f := range step.Fields {
			value, ok := values[f.Key]
			if !ok {
				cmd.Printf("  %s: ", f.Label)
				if f.Secret {
					value = readPassword(reader)
					cmd.Println()
				} else {
					value = readLine(reader)
				}
			}
			if err := w.SetField(f.Key, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", f.Key, err)
			}
		}
		cmd.Println()

		last := w.IsLastStep()
		if last {
			cmd.Print("Submitting configuration... ")
		}
		outcome, err := w.Next(commandContext(cmd))
		if err != nil {
			return err
		}
		if !last {
			continue
		}

		if outcome.Phase == domain.PhaseFailed {
			cmd.Println("FAILED")
			return fmt.Errorf("%w: %s", domain.ErrConnectionFailed, outcome.Message)
		}
		cmd.Println("OK")
		cmd.Printf("%s configured.\n", d.Name)
		return nil
	}
}

// parseAssignments turns key=value pairs into a map.
func parseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, pair)
		}
		values[key] = value
	}
	return values, nil
}
