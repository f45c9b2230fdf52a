package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo-upload/internal/model"
	"github.com/idilsaglam/todo-upload/internal/mutation"
	"github.com/idilsaglam/todo-upload/internal/ui"
)

func newPostCmd(a *app) *cobra.Command {
	todo := model.DemoTodo
	var printJSON bool
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Submit one todo to the endpoint",
		Args:  argsUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := a.mutation()
			res := m.Do(cmd.Context(), mutation.Params{
				Todo:      todo,
				OnSuccess: func() { ui.OK("submitted") },
				OnError:   func() { ui.Fail("submit failed") },
			})
			switch r := res.(type) {
			case mutation.Succeeded:
				if printJSON {
					fmt.Println(string(r.Response.RequestBody))
				}
				return nil
			case mutation.Failed:
				detail := r.Err.Error()
				var apiErr *mutation.APIError
				if errors.As(r.Err, &apiErr) {
					detail = fmt.Sprintf("status %d", apiErr.StatusCode)
				}
				fmt.Fprintln(os.Stderr, ui.Current().Muted.Render(detail))
				return exitError{code: 1}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&todo.ID, "id", todo.ID, "todo id")
	f.StringVar(&todo.FirstName, "first", todo.FirstName, "given name")
	f.StringVar(&todo.LastName, "last", todo.LastName, "family name")
	f.BoolVar(&printJSON, "json", false, "print the JSON body that was sent")
	return cmd
}
