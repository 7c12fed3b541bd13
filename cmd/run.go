package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/app"
	sess "github.com/minhvu/quizdeck/internal/session"
)

// runApp builds the shared dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	gate, err := resolveGate(cmd)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	return app.Run(app.Options{
		Client: api.New(resolveServerURL(cmd)),
		Gate:   gate,
		Cache:  sess.NewCache(),
	})
}
