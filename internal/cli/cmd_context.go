package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpggio/personalos/internal/domain/daycontext"
)

func newContextCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "context [date]",
		Short: "Print the aggregated context of a day as JSON (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(ctx context.Context, rt *runtime) error {
				var (
					agg *daycontext.DayAggregate
					err error
				)
				if len(args) == 1 {
					agg, err = rt.app.Context.GetContext(ctx, args[0])
				} else {
					agg, err = rt.app.Context.GetTodayContext(ctx)
				}
				if err != nil {
					return err
				}
				enc := json.NewEncoder(deps.out)
				enc.SetIndent("", "  ")
				return enc.Encode(agg)
			})
		},
	}
}

func newPromptCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print today's context as the plain-text assistant prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(ctx context.Context, rt *runtime) error {
				prompt, err := rt.app.Context.GetFormattedPrompt(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(deps.out, prompt)
				return err
			})
		},
	}
}
