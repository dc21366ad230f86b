package cli

import (
	"io"

	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

type globalOptions struct {
	DBPath   string
	LogLevel string
}

type commandDeps struct {
	out     io.Writer
	errOut  io.Writer
	build   BuildInfo
	globals *globalOptions
}

func NewRootCommand(out, errOut io.Writer, build BuildInfo) *cobra.Command {
	globals := &globalOptions{}
	deps := commandDeps{out: out, errOut: errOut, build: build, globals: globals}

	cmd := &cobra.Command{
		Use:           "personalos",
		Short:         "Local-first store for tasks, focus sessions, habits, notes and days",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&globals.DBPath, "db", "", "Database path (overrides PERSONALOS_DB_PATH)")
	cmd.PersistentFlags().StringVar(&globals.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(newServeCommand(deps))
	cmd.AddCommand(newContextCommand(deps))
	cmd.AddCommand(newPromptCommand(deps))
	cmd.AddCommand(newMigrateCommand(deps))
	cmd.AddCommand(newVersionCommand(deps))
	return cmd
}
