package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-upload/internal/stage"
	"github.com/idilsaglam/todo-upload/internal/tui"
	"github.com/idilsaglam/todo-upload/internal/ui"
)

func newUICmd(a *app) *cobra.Command {
	var closed bool
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Run the interactive page (default)",
		Args:  argsUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, a, closed)
		},
	}
	cmd.Flags().String("dir", ".", "directory the file picker starts in")
	cmd.Flags().BoolVar(&closed, "closed", false, "start with file staging closed")
	_ = a.v.BindPFlag("picker.dir", cmd.Flags().Lookup("dir"))
	return cmd
}

func runUI(cmd *cobra.Command, a *app, closed bool) error {
	pc := a.cfg.Picker
	page := tui.New(cmd.Context(), a.mutation(), !closed, a.log,
		stage.WithDirectory(pc.Dir),
		stage.WithAllowedTypes(pc.AllowedTypes...),
		stage.WithShowHidden(pc.ShowHidden),
	)
	final, err := tui.Run(page)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if n := len(final.Widget().Files()); n > 0 {
		ui.OK(fmt.Sprintf("%d file(s) staged", n))
	}
	return nil
}
