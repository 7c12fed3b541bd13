package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhvu/quizdeck/internal/api"
	"github.com/minhvu/quizdeck/internal/directory"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the question sets visible to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, err := resolveGate(cmd)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}

		dir := directory.New(api.New(resolveServerURL(cmd)), gate)
		setList, err := dir.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		if len(setList) == 0 {
			fmt.Println("No question sets.")
			return nil
		}

		for _, qs := range setList {
			visibility := "private"
			if qs.Visibility == api.VisibilityPublic {
				visibility = "public"
			}
			fmt.Printf("%-36s  %-10s  %s\n", qs.ID, visibility, qs.Name)
		}
		return nil
	},
}
