package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/person"
)

func newAttendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Show and mark a day's attendance",
	}
	cmd.AddCommand(newAttendanceShowCmd(a), newAttendanceMarkCmd(a), newAttendanceCheckCmd(a))
	return cmd
}

func newAttendanceShowCmd(a *app) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the roster with each person's mark for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = a.clock.Today()
			}
			day, err := a.reconciler().LoadDay(cmd.Context(), date)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "KEY\tNAME\tMARK\n")
			for _, e := range day.Entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Key, e.Name, e.Mark)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d on roster, %d marked\n", day.Date, len(day.Entries), len(day.Marked()))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "fecha", "", "date YYYY-MM-DD (default today)")
	return cmd
}

func newAttendanceMarkCmd(a *app) *cobra.Command {
	var date string
	var present, absent []string
	cmd := &cobra.Command{
		Use:     "mark",
		Short:   "Mark people present or absent and save only those changes",
		Example: "  diaconisas attendance mark --fecha 2024-03-10 --present member-1,friend-4 --absent member-2",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(present)+len(absent) == 0 {
				return errors.New("nothing to mark: use --present or --absent")
			}
			toggles, err := parseToggles(present, absent)
			if err != nil {
				return err
			}
			if date == "" {
				date = a.clock.Today()
			}

			r := a.reconciler()
			if _, err := r.LoadDay(cmd.Context(), date); err != nil {
				return err
			}
			for _, t := range toggles {
				if err := r.Toggle(t.key.Kind, t.key.PersonID, t.present); err != nil {
					return err
				}
			}
			summary, err := r.Commit(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", summary.Date, summary)
			for _, f := range summary.Failures {
				fmt.Fprintf(out, "  failed %s (%s): %v\n", f.Key, f.Name, f.Err)
			}
			if !summary.OK() {
				return fmt.Errorf("%d of %d writes failed", len(summary.Failures), summary.Attempted)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "fecha", "", "date YYYY-MM-DD (default today)")
	cmd.Flags().StringSliceVar(&present, "present", nil, "keys to mark present, e.g. member-1,friend-2")
	cmd.Flags().StringSliceVar(&absent, "absent", nil, "keys to mark absent")
	return cmd
}

func newAttendanceCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <tipo> <person_id>",
		Short: "Report whether a person already has a record today",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.reconciler().TodayMarkedSet(cmd.Context())
			if err != nil {
				return err
			}
			if set.Has(args[0], args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), "marked")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "not marked")
			}
			return nil
		},
	}
}

type toggle struct {
	key     person.Key
	present bool
}

// parseToggles turns --present/--absent keys into toggles. A key listed twice is rejected.
func parseToggles(present, absent []string) ([]toggle, error) {
	seen := make(map[person.Key]bool)
	var out []toggle
	add := func(raw string, mark attendance.Mark) error {
		key, err := person.ParseKey(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		if seen[key] {
			return fmt.Errorf("%s listed more than once", key)
		}
		seen[key] = true
		out = append(out, toggle{key: key, present: mark == attendance.Present})
		return nil
	}
	for _, raw := range present {
		if err := add(raw, attendance.Present); err != nil {
			return nil, err
		}
	}
	for _, raw := range absent {
		if err := add(raw, attendance.Absent); err != nil {
			return nil, err
		}
	}
	return out, nil
}
