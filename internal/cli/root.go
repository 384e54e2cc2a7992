package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entrypoint"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version string
	Commit  string
}

// NewRootCommand builds the library command tree. Running it without a
// subcommand starts the HTTP server.
func NewRootCommand(info BuildInfo) *cobra.Command {
	serve := newServeCommand(info)

	root := &cobra.Command{
		Use:           "library",
		Short:         "Library catalog service for authors, books and categories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(
		serve,
		NewSeedCommand().Command(),
		newVersionCommand(info),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(info BuildInfo) error {
	return NewRootCommand(info).Execute()
}

func newServeCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: "Start the HTTP server. Configuration is read from the environment\n" +
			"and an optional .env file (PORT, DATABASE_DRIVER, DATABASE_PATH, ...).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entrypoint.Run(config.NewConfig(), info.Version)
			return nil
		},
	}
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "library %s (%s)\n", info.Version, info.Commit)
		},
	}
}
