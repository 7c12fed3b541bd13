package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhvu/quizdeck/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API credential for the quiz service",
	RunE: func(cmd *cobra.Command, args []string) error {
		gate, err := resolveGate(cmd)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}

		username, _ := cmd.Flags().GetString("username")
		token, _ := cmd.Flags().GetString("token")
		expiresIn, _ := cmd.Flags().GetDuration("expires-in")

		reader := bufio.NewReader(cmd.InOrStdin())
		if username == "" {
			fmt.Print("Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		if token == "" {
			fmt.Print("API token: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}

		creds := identity.Credentials{Username: username, Token: token}
		if expiresIn > 0 {
			creds.ExpiresAt = time.Now().Add(expiresIn)
		}

		if err := gate.Login(creds); err != nil {
			return fmt.Errorf("store credentials: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Signed in as %s.\n", username)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("username", "", "Account username")
	loginCmd.Flags().String("token", "", "API token (prompted when omitted)")
	loginCmd.Flags().Duration("expires-in", 0, "Treat the token as expired after this duration (0 = never)")
}
