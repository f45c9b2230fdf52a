package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idilsaglam/todo-upload/internal/config"
	"github.com/idilsaglam/todo-upload/internal/logging"
	"github.com/idilsaglam/todo-upload/internal/mutation"
	"github.com/idilsaglam/todo-upload/internal/ui"
)

// exitError carries an exit code for failures already reported to the user.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	v       *viper.Viper
	cfg     config.Config
	log     *logging.Logger
	logFile *os.File
}

func (a *app) mutation() *mutation.Mutation {
	return mutation.New(mutation.NewClient(a.cfg.Endpoint, a.cfg.Timeout), mutation.WithLogger(a.log))
}

func (a *app) setup(cmd *cobra.Command) error {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		a.v.SetConfigFile(p)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	a.log = logging.Discard()
	if cfg.Log.File != "" {
		l, f, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return err
		}
		a.log, a.logFile = l, f
	}
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// Execute dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(ctx context.Context, args []string) int {
	a := &app{v: config.New()}
	root := newRootCmd(a)
	root.SetArgs(args)
	defer a.close()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	ui.Fail(err.Error())
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintln(os.Stderr, ui.Current().Muted.Render("Hint: run `todo help` for usage"))
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - submit a todo and stage files from the terminal",
		Long: `todo - a tiny demo

Runs an interactive page (default) with a submit button for a fixed todo
and a file-staging list, or the same pieces non-interactively.`,
		Example: `  todo
  todo ui --dir ~/Pictures
  todo post --id 2 --first Hanako --last Sato
  todo stage a.png b.txt --remove 1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, a, false)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default ~/.config/todo/config.toml, env TODO_CONFIG)")
	pf.String("endpoint", config.DefaultEndpoint, "write endpoint URL")
	pf.Duration("timeout", 30*time.Second, "request timeout, 0 for none")
	pf.String("log-file", "", "write debug logs to this file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("theme", "classic", "color theme: classic, neon, mono")

	_ = a.v.BindPFlag("endpoint", pf.Lookup("endpoint"))
	_ = a.v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("theme", pf.Lookup("theme"))
	_ = a.v.BindPFlag("timeout", pf.Lookup("timeout"))

	root.AddCommand(newUICmd(a), newPostCmd(a), newStageCmd(a))
	return root
}

// argsUsage wraps a cobra arg validator so violations exit with code 2.
func argsUsage(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}
