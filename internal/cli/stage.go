package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-upload/internal/model"
	"github.com/idilsaglam/todo-upload/internal/stage"
	"github.com/idilsaglam/todo-upload/internal/ui"
)

func newStageCmd(a *app) *cobra.Command {
	var removes []int
	cmd := &cobra.Command{
		Use:   "stage <file...>",
		Short: "Stage files one selection at a time, then apply removals",
		Long: `Stage each file as its own selection event, then remove entries by
1-based index in the order given. Prints the resulting list.`,
		Args: argsUsage(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			w := stage.New(true, func(files []model.StagedFile) {
				a.log.Debug("file change", "files", model.Names(files))
			}, stage.WithLogger(a.log))

			for _, p := range args {
				f, err := model.StageFromPath(p)
				if err != nil {
					return err
				}
				w.Add(stage.Selection{f})
			}
			for _, n := range removes {
				before := len(w.Files())
				if len(w.Remove(n-1)) == before {
					fmt.Fprintln(os.Stderr, ui.Current().Muted.Render(
						fmt.Sprintf("rm %d: index out of range: have %d (ignored)", n, before)))
				}
			}
			printStaged(w.Files())
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&removes, "remove", nil, "1-based index to remove (repeatable)")
	return cmd
}

func printStaged(files []model.StagedFile) {
	t := ui.Current()
	if len(files) == 0 {
		fmt.Println(t.Muted.Render("no files staged"))
		return
	}
	lines := []string{t.Title.Render(fmt.Sprintf("Staged files (%d)", len(files)))}
	for i, f := range files {
		lines = append(lines, fmt.Sprintf("%2d. %s  %s", i+1, f.Name,
			t.Muted.Render(f.HumanSize()+"  "+f.MIMEType)))
	}
	ui.Panel(lines...)
}
