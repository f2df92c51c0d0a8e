package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpggio/cadence/internal/calendar"
)

func newGridCmd(c *cli) *cobra.Command {
	var (
		year   int
		month  int
		userID string
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print a month grid",
		Long: `Prints the six-week grid for a month. Days outside the month are shown
in parentheses. With --user, days holding scheduled content are marked with *.

Months are zero-based: --month 0 is January.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := c.cfg.Location()
			if err != nil {
				return err
			}
			now := time.Now().In(loc)
			if !cmd.Flags().Changed("year") {
				year = now.Year()
			}
			if !cmd.Flags().Changed("month") {
				month = int(now.Month()) - 1
			}
			if month < 0 || month > 11 {
				return fmt.Errorf("month %d out of range 0-11", month)
			}

			view := calendar.BuildMonth(year, month, nil, now)
			if userID != "" {
				a, closeDB, err := c.openApp(cmd.Context())
				if err != nil {
					return err
				}
				defer closeDB()
				v, err := a.Services.Calendar.Month(cmd.Context(), userID, year, month, loc, now)
				if err != nil {
					return err
				}
				view = *v
			}
			renderMonth(cmd.OutOrStdout(), view)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "zero-based month (default current)")
	cmd.Flags().StringVar(&userID, "user", "", "mark days with schedules for this user id")
	return cmd
}

func renderMonth(w io.Writer, view calendar.MonthView) {
	fmt.Fprintln(w, view.Label)
	fmt.Fprintln(w, "  Su   Mo   Tu   We   Th   Fr   Sa")
	for row := 0; row < len(view.Cells)/7; row++ {
		var b strings.Builder
		for _, cell := range view.Cells[row*7 : row*7+7] {
			if cell.IsCurrentMonth {
				fmt.Fprintf(&b, "  %2d", cell.Day)
			} else {
				fmt.Fprintf(&b, "(%2d)", cell.Day)
			}
			if len(cell.Events) > 0 {
				b.WriteByte('*')
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}
