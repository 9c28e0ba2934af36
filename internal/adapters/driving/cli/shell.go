package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/leadscout/internal/core/domain"
)

const (
	shellName   = "shell"
	shellPrompt = "leadscout> "
)

var shellCommands []string

var shellCmd = &cobra.Command{
	Use:   shellName,
	Short: "Run commands in one session",
	Long: `Source configuration and selection last for one session. The shell runs
leadscout commands one per line against the same session, so sources can be
configured, selected and searched in turn.

Commands are read from stdin until 'exit' or end of input:
  leadscout shell
  leadscout> configure google --set apiKey=XXXX
  leadscout> sources select google
  leadscout> leads search "head of sales"

Or passed with -c, one command per flag:
  leadscout shell -c "configure google --set apiKey=XXXX" -c "sources select google" -c "leads search saas"`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().StringArrayVarP(&shellCommands, "command", "c", nil, "command to run (repeatable); skips stdin")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	if sourceConfigService == nil {
		return fmt.Errorf("shell %w", errServiceNotConfigured)
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	startWatcher(ctx)

	// Flags are cleared before each line runs.
	scripted := shellCommands
	root := cmd.Root()
	defer func() {
		root.SetArgs(nil)
		root.SetIn(nil)
	}()

	// Prompts read from the same buffered reader as the shell.
	reader := bufio.NewReader(cmd.InOrStdin())
	root.SetIn(reader)

	if len(scripted) > 0 {
		for _, line := range scripted {
			err := runShellLine(ctx, cmd, line)
			if errors.Is(err, errShellExit) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", strings.TrimSpace(line), err)
			}
		}
		return nil
	}

	for {
		cmd.Print(shellPrompt)
		line, readErr := reader.ReadString('\n')
		err := runShellLine(ctx, cmd, line)
		if errors.Is(err, errShellExit) {
			return nil
		}
		if err != nil {
			cmd.PrintErrln("Error:", err)
		}
		if readErr == io.EOF {
			cmd.Println()
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// errShellExit ends the shell.
var errShellExit = errors.New("exit")

// runShellLine runs one command line against the root command.
func runShellLine(ctx context.Context, cmd *cobra.Command, line string) error {
	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "exit", "quit":
		return errShellExit
	case shellName:
		return fmt.Errorf("%w: already in a shell", domain.ErrInvalidInput)
	}

	root := cmd.Root()
	resetFlags(root)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// splitArgs splits a command line on whitespace. Single or double quotes
// group words; a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote", domain.ErrInvalidInput)
	}
	if escaped {
		return nil, fmt.Errorf("%w: trailing backslash", domain.ErrInvalidInput)
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}

// resetFlags restores every flag in the tree to its default so values do
// not carry over between commands run in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
