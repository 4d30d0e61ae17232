package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aitemdev/notnative-sync-server-sub000/internal/shared"
)

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create an account on the sync server",
	Long: `Creates a new account and logs this device in. The password is asked for
twice to guard against typos.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
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

	repeat, err := GetPassword("Repeat password: ", out)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(repeat)

	if !bytes.Equal(password, repeat) {
		return errors.New("passwords do not match")
	}

	if err := app.Orchestrator.Register(cmd.Context(), email, string(password), cfg.ServerURL); err != nil {
		return err
	}

	fmt.Fprintf(out, "Account created, logged in as %s.\n", email)
	return nil
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
