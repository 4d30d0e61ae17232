package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/shared"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to the sync server",
	Long: `Authenticates this device against the sync server. On success the session
is stored locally, an immediate sync runs, and periodic sync starts for the
lifetime of the process.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	email, err := emailFromArgsOrPrompt(args, reader, out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Enter password: ", out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := app.Orchestrator.Login(cmd.Context(), email, string(password), cfg.ServerURL); err != nil {
		return err
	}

	fmt.Fprintf(out, "Logged in as %s.\n", email)
	return nil
}

func emailFromArgsOrPrompt(args []string, reader *bufio.Reader, w io.Writer) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	email, err := GetSimpleText(reader, "Email", w)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", errors.New("email must not be empty")
	}
	return email, nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
