package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"punch.cli/internal/api"
	"punch.cli/internal/state"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the HR platform",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := cfg.Username
	if username == "" {
		fmt.Print("Enter your user name: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading user name: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	fmt.Print("Enter your password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	ctx := cmd.Context()
	session, err := api.Login(ctx, cfg.BaseURL, username, string(password))
	if err != nil {
		return err
	}

	info, err := session.AccountInfo(ctx)
	if err != nil {
		return fmt.Errorf("fetching account info: %w", err)
	}

	st := state.State{
		AccessToken: session.Token(),
		CompanyID:   info.Role.Company.ID,
		RoleID:      info.ID,
	}
	if err := state.Save(cfgDir, st); err != nil {
		return err
	}

	fmt.Println("Authentication successful.")
	return nil
}
