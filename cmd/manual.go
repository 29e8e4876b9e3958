package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"punch.cli/internal/api"
	"punch.cli/internal/track"
)

var (
	manualDaysAgo int
	manualCheck   bool
	manualYes     bool
)

var manualCmd = &cobra.Command{
	Use:   "manual <range>...",
	Short: "Manually add a full day's entry",
	Long: `Manually add a time entry for a whole day from one or more shift ranges
in H[:MM]-H[:MM] form, for example:

  punch manual 8:30-17:15
  punch manual --days-ago 1 8-12 13-17

Statutory minimum breaks (German labor law) are inserted automatically into
each submitted range; supplying several ranges records the gaps between them
as explicit breaks instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runManual,
}

func init() {
	manualCmd.Flags().IntVarP(&manualDaysAgo, "days-ago", "d", 0, "Add the entry N days in the past")
	manualCmd.Flags().BoolVarP(&manualCheck, "check", "c", false, "Verify the day is not a weekend, holiday or approved leave first")
	manualCmd.Flags().BoolVarP(&manualYes, "yes", "y", false, "Bypass the confirmation prompt")
}

func runManual(cmd *cobra.Command, args []string) error {
	ranges := make([]track.TimeRange, 0, len(args))
	for _, arg := range args {
		r, err := track.ParseRange(arg)
		if err != nil {
			return err
		}
		ranges = append(ranges, r)
	}

	session, err := activeSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	date := api.DateOf(time.Now().AddDate(0, 0, -manualDaysAgo))

	entry, err := track.PrepareManual(ctx, session, date, ranges, manualCheck)
	if err != nil {
		return err
	}

	if !manualYes && !cfg.NonInteractive {
		ok, err := confirm(fmt.Sprintf("Create entry %s?", entry))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	created, err := session.CreateEntry(ctx, entry)
	if err != nil {
		return err
	}

	end := created.StartTime
	if created.EndTime != nil {
		end = *created.EndTime
	}
	fmt.Printf("Added entry from %s to %s (Regular hours: %s, Breaks: %s)\n",
		created.StartTime.Local().Format("15:04"),
		end.Local().Format("15:04"),
		formatHours(float64(created.RegularHours)),
		formatHours(float64(created.UnpaidBreakHours)))
	return nil
}

// confirm asks a yes/no question on stdin; only "y"/"yes" count as yes.
func confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
