package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
	"diaconisas/internal/domain/stats"
)

// addRange registers --start/--end defaulting to the current month.
func addRange(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start", "", "first date YYYY-MM-DD (default first of this month)")
	cmd.Flags().StringVar(end, "end", "", "last date YYYY-MM-DD (default last of this month)")
}

func (a *app) period(start, end string) (period.Period, error) {
	if start == "" && end == "" {
		return a.clock.CurrentMonth(), nil
	}
	return period.New(start, end)
}

func newStatsCmd(a *app) *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Attendance rates and absent members for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.period(start, end)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			members, err := a.client.ListMembers(ctx)
			if err != nil {
				return err
			}
			friends, err := a.client.ListFriends(ctx)
			if err != nil {
				return err
			}
			detail, err := a.client.DateRangeReport(ctx, p.StartDate(), p.EndDate(), person.KindUnknown)
			if err != nil {
				return err
			}
			s := stats.Compute(stats.Roster{Members: members, Friends: friends}, detail.Records, p)
			return printStatistics(cmd.OutOrStdout(), p, s)
		},
	}
	addRange(cmd, &start, &end)
	return cmd
}

func printStatistics(w io.Writer, p period.Period, s stats.Statistics) error {
	fmt.Fprintf(w, "Period %s to %s (%d days)\n", p.StartDate(), p.EndDate(), s.DaysInPeriod)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\tON ROSTER\tPRESENT\tRATE\n")
	fmt.Fprintf(tw, "members\t%d\t%d\t%.1f%%\n", s.TotalMembers, s.MemberAttendance, s.MemberRate)
	fmt.Fprintf(tw, "friends\t%d\t%d\t%.1f%%\n", s.TotalFriends, s.FriendAttendance, s.FriendRate)
	fmt.Fprintf(tw, "overall\t%d\t%d\t%.1f%%\n", s.TotalPeople, s.TotalAttendance, s.OverallRate)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Absent members: %d\n", len(s.AbsentMembers))
	for _, m := range s.AbsentMembers {
		fmt.Fprintf(w, "  %s\n", m.FullName())
	}
	return nil
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Server-side attendance reports",
	}
	cmd.AddCommand(newReportRangeCmd(a), newReportCollectiveCmd(a), newReportVisitorsCmd(a))
	return cmd
}

func newReportRangeCmd(a *app) *cobra.Command {
	var start, end, tipo string
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Every record in a period with present and absent totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.period(start, end)
			if err != nil {
				return err
			}
			kind := person.KindUnknown
			if tipo != "" && tipo != "all" {
				if kind, err = person.ParseKind(tipo); err != nil {
					return err
				}
			}
			d, err := a.client.DateRangeReport(cmd.Context(), p.StartDate(), p.EndDate(), kind)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d records, %d present, %d absent, rate %.2f%%\n",
				d.Summary.Total, d.Summary.Present, d.Summary.Absent, d.Summary.AttendanceRate)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "FECHA\tTIPO\tNAME\tPRESENT\n")
			for _, r := range d.Preview {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", r.Date, r.Kind, r.PersonName, r.Present)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if hidden := len(d.Records) - len(d.Preview); hidden > 0 {
				fmt.Fprintf(w, "... %d more\n", hidden)
			}
			return nil
		},
	}
	addRange(cmd, &start, &end)
	cmd.Flags().StringVar(&tipo, "tipo", "all", "all, member, friend or visitor")
	return cmd
}

func newReportCollectiveCmd(a *app) *cobra.Command {
	var start, end string
	cmd := &cobra.Command{
		Use:   "collective",
		Short: "Present counts per date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.period(start, end)
			if err != nil {
				return err
			}
			c, err := a.client.CollectiveReport(cmd.Context(), p.StartDate(), p.EndDate())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "FECHA\tMEMBERS\tFRIENDS\tTOTAL\n")
			for _, pt := range c.Series() {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", pt.Date, pt.Members, pt.Friends, pt.Total)
			}
			fmt.Fprintf(tw, "\t\t\t%d of %d present\n", c.TotalPresent, c.TotalRecords)
			return tw.Flush()
		},
	}
	addRange(cmd, &start, &end)
	return cmd
}

func newReportVisitorsCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "Friends present on a date and where they come from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = a.clock.Today()
			}
			v, err := a.client.VisitorsOfDay(cmd.Context(), date)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "NAME\tDE DONDE VIENE\n")
			for _, e := range v.Visitors {
				fmt.Fprintf(tw, "%s\t%s\n", e.Nombre, e.DeDondeViene)
			}
			fmt.Fprintf(tw, "%d visitors on %s\n", len(v.Visitors), v.Fecha)
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&date, "fecha", "", "date YYYY-MM-DD (default today)")
	return cmd
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Headline counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Today (%s)\n", d.Today)
			fmt.Fprintf(w, "  members:          %d\n", d.TotalMembers)
			fmt.Fprintf(w, "  friends:          %d\n", d.TotalFriends)
			fmt.Fprintf(w, "  present today:    %d\n", d.TodayAttendance)
			fmt.Fprintf(w, "  present in month: %d\n", d.MonthAttendance)
			return nil
		},
	}
}
