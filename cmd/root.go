package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/identity"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Take tests from your question sets",
	Long:  "Quizdeck — terminal client for the quiz service: browse question sets, take timed tests, and review past attempts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Quiz service base URL (overrides QUIZDECK_SERVER env var)")
	rootCmd.PersistentFlags().String("credentials", "", "Path to the credentials file (overrides QUIZDECK_CREDENTIALS env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveServerURL returns the service base URL using the --server flag
// (highest priority), then QUIZDECK_SERVER, then the default.
func resolveServerURL(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		return s
	}
	if s := os.Getenv("QUIZDECK_SERVER"); s != "" {
		return s
	}
	return api.DefaultBaseURL
}

// resolveGate loads the credentials file named by --credentials, the
// QUIZDECK_CREDENTIALS env var, or the default path.
func resolveGate(cmd *cobra.Command) (*identity.FileGate, error) {
	path, _ := cmd.Flags().GetString("credentials")
	if path == "" {
		var err error
		path, err = identity.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return identity.Load(path)
}
