package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current clock-in status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}

	entry, err := session.CurrentEntry(cmd.Context())
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Println("Not clocked in!")
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Clocked in since %s", entry.StartTime.Local().Format("15:04"))
	if br := entry.CurrentBreak(); br != nil {
		fmt.Fprintf(&msg, ", started break at %s", br.StartTime.Local().Format("15:04"))
	}
	fmt.Fprintf(&msg, " (Regular hours: %s, Breaks: %s)",
		formatHours(float64(entry.RegularHours)),
		formatHours(float64(entry.UnpaidBreakHours)))
	fmt.Println(msg.String())
	return nil
}
