package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the store and report its schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), deps, func(ctx context.Context, rt *runtime) error {
				version, err := rt.db.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(deps.out, "path=%s schema_version=%d\n", rt.cfg.DB.Path, version)
				return err
			})
		},
	}
}
