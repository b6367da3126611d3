package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"propcare/models"
	"propcare/services/interval"
	"propcare/services/matching"

	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the scenario's proposals and report the top fully free slot",
	RunE:  runRank,
}

var gridDate string

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print one day of grid cells with their perfect-match flags",
	RunE:  runGrid,
}

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Validate the scenario's selection against the proposals",
	RunE:  runSelect,
}

func init() {
	gridCmd.Flags().StringVar(&gridDate, "date", "", "day to print (YYYY-MM-DD); defaults to the first proposal's day")
	rootCmd.AddCommand(rankCmd, gridCmd, selectCmd)
}

func engineFor(s *Scenario) (*matching.Engine, error) {
	return matching.NewEngine(s.Input)
}

func runRank(cmd *cobra.Command, args []string) error {
	s, err := loadScenario()
	if err != nil {
		return err
	}
	e, err := engineFor(s)
	if err != nil {
		return err
	}
	return writeRanking(cmd.OutOrStdout(), e, s.Location)
}

func writeRanking(out io.Writer, e *matching.Engine, loc *time.Location) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tSTART\tEND\tFREE HOURS\tFULLY FREE")
	for _, r := range e.RankSlots() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%v\n",
			r.ProposedSlotIndex,
			r.Interval.Start.In(loc).Format(wallClockLayout),
			r.Interval.End.In(loc).Format(wallClockLayout),
			r.FreeHours, r.IsFullyFree)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	top, err := e.AcceptTopMatch()
	switch {
	case errors.Is(err, matching.ErrNoFullyFreeSlot), errors.Is(err, matching.ErrNoProposals):
		fmt.Fprintf(out, "\ntop match: none (%v)\n", err)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(out, "\ntop match: slot %d\n", top.ProposedSlotIndex)
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	s, err := loadScenario()
	if err != nil {
		return err
	}
	e, err := engineFor(s)
	if err != nil {
		return err
	}

	var day time.Time
	switch {
	case gridDate != "":
		if day, err = time.ParseInLocation("2006-01-02", gridDate, s.Location); err != nil {
			return fmt.Errorf("--date: %w", err)
		}
	case len(s.Input.TenantSlots) > 0:
		day = s.Input.TenantSlots[0].Interval.Start.In(s.Location)
	default:
		return errors.New("no proposals and no --date given")
	}

	span, err := interval.Between(day, 0, 0, 24, 0, s.Location)
	if err != nil {
		return err
	}
	cells, err := e.Cells(span, s.GridMinutes)
	if err != nil {
		return err
	}
	return writeGrid(cmd.OutOrStdout(), cells, s.Location)
}

func writeGrid(out io.Writer, cells []models.GridCell, loc *time.Location) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CELL\tTENANT\tBUSY\tMATCH")
	for _, c := range cells {
		if !c.TenantAvailable && !c.HasExistingJob {
			continue
		}
		fmt.Fprintf(tw, "%s-%s\t%v\t%v\t%v\n",
			c.Interval.Start.In(loc).Format("15:04"),
			c.Interval.End.In(loc).Format("15:04"),
			c.TenantAvailable, c.HasExistingJob, c.PerfectMatch)
	}
	return tw.Flush()
}

func runSelect(cmd *cobra.Command, args []string) error {
	s, err := loadScenario()
	if err != nil {
		return err
	}
	if s.Selection == nil {
		return errors.New("scenario has no selection")
	}
	e, err := engineFor(s)
	if err != nil {
		return err
	}
	res, err := e.ValidateSelection(*s.Selection)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "slot %d, %d minutes", res.ProposedSlotIndex, res.DurationMinutes)
	if res.DurationMismatch {
		fmt.Fprintf(out, " (expected %d)", res.ExpectedMinutes)
	}
	fmt.Fprintln(out)
	return nil
}
