package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"punch.cli/internal/api"
	"punch.cli/internal/config"
	"punch.cli/internal/state"
)

var rootCmd = &cobra.Command{
	Use:   "punch",
	Short: "punch – clock in and out of your HR platform from the terminal",
	Long: `punch is a command-line client for the company time-tracking system.
It can clock you in and out, manage breaks, and backfill manual entries for
whole days, including the statutory minimum breaks required by German labor
law. Credentials and settings live in ~/.punch/.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// cfg and cfgDir are populated by setup before any command runs.
var (
	cfg    config.Config
	cfgDir string
)

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(continueCmd)
	rootCmd.AddCommand(manualCmd)
	rootCmd.AddCommand(mfaCmd)
	rootCmd.AddCommand(configureCmd)
}

// setup loads the configuration and wires the global logger.
func setup(cmd *cobra.Command, args []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	cfgDir = dir

	cfg, err = config.Load(dir)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

// activeSession builds an API session from the persisted login state.
func activeSession() (*api.Session, error) {
	st, err := state.Load(cfgDir)
	if err != nil {
		return nil, err
	}
	if st.AccessToken == "" {
		return nil, errors.New(`not authenticated, run "punch login" first`)
	}
	session, err := api.NewSession(cfg.BaseURL, st.AccessToken)
	if err != nil {
		return nil, err
	}
	if st.CompanyID != "" && st.RoleID != "" {
		session = session.WithCompanyAndRole(st.CompanyID, st.RoleID)
	}
	return session, nil
}

// formatHours renders fractional hours as "H:MM", e.g. 7.5 -> "7:30".
func formatHours(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%d:%02d", h, m)
}
