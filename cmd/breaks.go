package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"punch.cli/internal/api"
	"punch.cli/internal/track"
)

var (
	errAlreadyOnBreak = errors.New("already on a break")
	errNotOnBreak     = errors.New("not on a break")
)

var breakCmd = &cobra.Command{
	Use:     "break",
	Aliases: []string{"sb"},
	Short:   "Start a break",
	Args:    cobra.NoArgs,
	RunE:    runBreak,
}

var continueCmd = &cobra.Command{
	Use:     "continue",
	Aliases: []string{"eb"},
	Short:   "Continue working after a break",
	Args:    cobra.NoArgs,
	RunE:    runContinue,
}

func runBreak(cmd *cobra.Command, args []string) error {
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
	if entry.CurrentBreak() != nil {
		return errAlreadyOnBreak
	}

	policy, err := session.FetchBreakPolicy(ctx, entry.ActivePolicy.BreakPolicy)
	if err != nil {
		return err
	}
	breakType := policy.ManualBreakType()
	if breakType == nil {
		return track.ErrNoManualBreakType
	}

	updated, err := session.StartBreak(ctx, entry.ID, breakType.ID)
	if err != nil {
		return err
	}
	br := updated.CurrentBreak()
	if br == nil {
		return api.ErrUnexpectedResponse
	}
	fmt.Printf("Started break at %s!\n", br.StartTime.Local().Format("15:04"))
	return nil
}

func runContinue(cmd *cobra.Command, args []string) error {
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
	current := entry.CurrentBreak()
	if current == nil {
		return errNotOnBreak
	}

	updated, err := session.EndBreak(ctx, entry.ID, current.BreakTypeID)
	if err != nil {
		return err
	}
	if len(updated.Breaks) == 0 {
		return api.ErrUnexpectedResponse
	}
	last := updated.Breaks[len(updated.Breaks)-1]
	dur, ok := last.Duration()
	if !ok || last.EndTime == nil {
		return api.ErrUnexpectedResponse
	}
	fmt.Printf("Stopped break at %s, after %s hours!\n",
		last.EndTime.Local().Format("15:04"),
		formatHours(dur.Hours()))
	return nil
}
