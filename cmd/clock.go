package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errNotClockedIn is shared by every command that needs a running entry.
var errNotClockedIn = errors.New("not clocked in")

var inCmd = &cobra.Command{
	Use:     "in",
	Aliases: []string{"clock-in"},
	Short:   "Clock in",
	Args:    cobra.NoArgs,
	RunE:    runIn,
}

var outCmd = &cobra.Command{
	Use:     "out",
	Aliases: []string{"clock-out"},
	Short:   "Clock out",
	Args:    cobra.NoArgs,
	RunE:    runOut,
}

func runIn(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}

	entry, err := session.StartClock(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Clocked in since %s!\n", entry.StartTime.Local().Format("15:04"))
	return nil
}

func runOut(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	entry, err := session.CurrentEntry(ctx)
	if err != nil {
		return err
	}
	if entry == nil {
		return errNotClockedIn
	}
	if _, err := session.StopClock(ctx, entry.ID); err != nil {
		return err
	}
	fmt.Println("Clocked out!")
	return nil
}
