package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, err := resolveGate(cmd)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
		if err := gate.Logout(); err != nil {
			return fmt.Errorf("remove credentials: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}
