package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"punch.cli/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Change persisted settings",
}

var configureUsernameCmd = &cobra.Command{
	Use:   "username <value>",
	Short: "Set the login user name",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigureUsername,
}

func init() {
	configureCmd.AddCommand(configureUsernameCmd)
}

func runConfigureUsername(cmd *cobra.Command, args []string) error {
	cfg.Username = args[0]
	if err := config.Save(cfgDir, cfg); err != nil {
		return err
	}
	fmt.Printf("Username set to %q.\n", args[0])
	return nil
}
