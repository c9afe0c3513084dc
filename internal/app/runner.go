package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avafoundry/ava-cli/internal/config"
	"github.com/avafoundry/ava-cli/internal/dispatch"
	clierr "github.com/avafoundry/ava-cli/internal/errors"
	"github.com/avafoundry/ava-cli/internal/schema"
	"github.com/avafoundry/ava-cli/internal/shell"
	"github.com/avafoundry/ava-cli/internal/version"
)

type Runner struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

func NewRunner() *Runner {
	return NewRunnerWithWriters(os.Stdout, os.Stderr)
}

func NewRunnerWithWriters(stdout, stderr io.Writer) *Runner {
	return &Runner{
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
	}
}

type runtimeState struct {
	runner   *Runner
	flags    config.GlobalFlags
	settings config.Settings
	root     *cobra.Command
}

func (r *Runner) Run(args []string) int {
	state := &runtimeState{runner: r}
	root := state.newRootCommand()
	state.root = root
	root.SetArgs(args)
	root.SetOut(r.stdout)
	root.SetErr(r.stderr)
	root.SilenceUsage = true
	root.SilenceErrors = true

	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(r.stderr, "error: %v\n", err)
	return clierr.ExitCode(err)
}

func (s *runtimeState) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   version.CLIName,
		Short: "Interactive console for a remote node",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			settings, err := config.Load(s.flags)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "load configuration", err)
			}
			s.settings = settings
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runShell(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Wrap(clierr.CodeUsage, "parse flags", err)
	})

	cmd.PersistentFlags().StringVar(&s.flags.ConfigPath, "config", "", "Path to config file")
	cmd.PersistentFlags().StringVar(&s.flags.NodeURL, "node", "", "Node API base URL")
	cmd.PersistentFlags().StringVar(&s.flags.Timeout, "timeout", "", "Node request timeout")
	cmd.PersistentFlags().IntVar(&s.flags.Retries, "retries", -1, "Retries per node request")
	cmd.PersistentFlags().StringVar(&s.flags.SpecDir, "spec-dir", "", "Directory of command definition records")
	cmd.PersistentFlags().BoolVar(&s.flags.NoJournal, "no-journal", false, "Disable the operation journal")
	cmd.PersistentFlags().StringVar(&s.flags.PollInterval, "poll-interval", "", "Pending operation poll interval")
	cmd.PersistentFlags().StringVar(&s.flags.EnableCommands, "enable-commands", "", "Restrict dispatch to a comma-separated list of context or context.method entries")

	cmd.AddCommand(s.newShellCommand())
	cmd.AddCommand(s.newRunCommand())
	cmd.AddCommand(s.newCommandsCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func (s *runtimeState) newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.runShell(cmd)
		},
	}
}

func (s *runtimeState) runShell(cmd *cobra.Command) error {
	pw := shell.NewPromptWriter()
	eng, err := s.buildEngine(pw)
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.watcher.Start(cmd.Context())
	defer eng.watcher.Stop()

	sh := shell.New(eng.dispatcher, eng.completer, eng.tracker, shell.Config{
		HistoryFile: s.settings.HistoryFile,
	})
	return sh.Run(cmd.Context(), pw)
}

func (s *runtimeState) newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <line>",
		Short: "Dispatch a single command line and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := s.buildEngine(s.runner.stdout)
			if err != nil {
				return err
			}
			defer eng.Close()

			line := strings.Join(args, " ")
			if err := eng.dispatcher.Handle(cmd.Context(), line); err != nil && !errors.Is(err, dispatch.ErrExitSession) {
				return err
			}
			for _, op := range eng.tracker.List() {
				fmt.Fprintf(s.runner.stdout, "operation %s submitted (%s)\n", op.ID, op.State)
			}
			return nil
		},
	}
}

func (s *runtimeState) newCommandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Print the merged command registry as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := s.buildEngine(io.Discard)
			if err != nil {
				return err
			}
			defer eng.Close()

			enc := json.NewEncoder(s.runner.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(schema.Build(s.root, eng.registry))
		},
	}
}

func newVersionCommand() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			if long {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Long())
				return
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.CLIVersion)
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "Print extended build metadata")
	return cmd
}
