package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/class-reminder/internal/application"
	"github.com/example/class-reminder/internal/persistence"
)

const dateLayout = "2006-01-02"

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "remindctl",
		Short: "Manage class reminders stored in a local SQLite database",
		Long: `Manage class reminders stored in a local SQLite database.

Configuration is read from REMINDER_* environment variables and an optional
.env file. Results are printed to stdout as JSON; logs go to stderr.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("db", "", "database file (overrides REMINDER_DB_PATH)")
	root.PersistentFlags().String("env-file", "", "env file to load instead of .env")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides REMINDER_LOG_LEVEL)")

	root.AddCommand(
		newAddCmd(c),
		newGetCmd(c),
		newListCmd(c),
		newCountCmd(c),
		newUpdateCmd(c),
		newDeleteCmd(c),
		newTodayCmd(c),
		newOnCmd(c),
		newUpcomingCmd(c),
		newConflictsCmd(c),
		newSchemaCmd(c),
	)
	return root
}

// --- add ---

func newAddCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reminder",
		Long: `Add a reminder and print its assigned id.

Examples:
  remindctl add --title "Linear Algebra" --days "Monday, Wednesday" --start 09:00 --end 10:30
  remindctl add --title "Lab" --days friday --instructor "Dr. Sato" --active=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}

			var reminder application.Reminder
			reminder.Active = true
			if err := applyReminderFlags(cmd, &reminder); err != nil {
				return err
			}

			return c.run(cmd, func(s *session, out io.Writer) error {
				id, err := s.service.AddReminder(s.ctx, reminder)
				if err != nil {
					return err
				}
				return printJSON(out, map[string]int64{"id": id})
			})
		},
	}
	addReminderFlags(cmd)
	return cmd
}

// --- get ---

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session, out io.Writer) error {
				reminder, err := s.service.GetReminder(s.ctx, id)
				if err != nil {
					return err
				}
				return printJSON(out, toView(reminder))
			})
		},
	}
}

// --- list ---

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session, out io.Writer) error {
				reminders, err := s.service.GetAllReminders(s.ctx)
				if err != nil {
					return err
				}
				return printJSON(out, toViews(reminders))
			})
		},
	}
}

// --- count ---

func newCountCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session, out io.Writer) error {
				count, err := s.service.GetRemindersCount(s.ctx)
				if err != nil {
					return err
				}
				return printJSON(out, map[string]int{"count": count})
			})
		},
	}
}

// --- update ---

func newUpdateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a reminder",
		Long: `Change fields of a reminder. Only the flags given are changed.

Examples:
  remindctl update 3 --days "Tuesday, Thursday"
  remindctl update 3 --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session, out io.Writer) error {
				reminder, err := s.service.GetReminder(s.ctx, id)
				if err != nil {
					return err
				}
				if err := applyReminderFlags(cmd, &reminder); err != nil {
					return err
				}
				affected, err := s.service.UpdateReminder(s.ctx, reminder)
				if err != nil {
					return err
				}
				return printJSON(out, map[string]int64{"affected": affected})
			})
		},
	}
	addReminderFlags(cmd)
	return cmd
}

// --- delete ---

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder; deleting a missing id succeeds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(s *session, out io.Writer) error {
				if err := s.service.DeleteReminder(s.ctx, application.Reminder{ID: id}); err != nil {
					return err
				}
				return printJSON(out, map[string]int64{"deleted": id})
			})
		},
	}
}

// --- today / on ---

func newTodayCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List the reminders scheduled for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session, out io.Writer) error {
				reminders, err := s.service.GetTodaysReminders(s.ctx)
				if err != nil {
					return err
				}
				return printJSON(out, toViews(reminders))
			})
		},
	}
}

func newOnCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "on <weekday|YYYY-MM-DD>",
		Short: "List the reminders scheduled on a weekday or on the weekday of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session, out io.Writer) error {
				var (
					reminders []application.Reminder
					err       error
				)
				if day, perr := persistence.ParseWeekday(args[0]); perr == nil {
					reminders, err = s.service.GetAllRemindersOnDay(s.ctx, day)
				} else {
					date, derr := time.ParseInLocation(dateLayout, strings.TrimSpace(args[0]), s.location)
					if derr != nil {
						return fmt.Errorf("%q is neither a weekday name nor a %s date", args[0], dateLayout)
					}
					reminders, err = s.service.GetAllRemindersOnWeekday(s.ctx, date)
				}
				if err != nil {
					return err
				}
				return printJSON(out, toViews(reminders))
			})
		},
	}
}

func newUpcomingCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List dated occurrences of active reminders, starting today",
		Long: `List dated occurrences of active reminders, starting today.

Examples:
  remindctl upcoming
  remindctl upcoming --days 14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			return c.run(cmd, func(s *session, out io.Writer) error {
				occurrences, err := s.service.GetUpcomingOccurrences(s.ctx, days)
				if err != nil {
					return err
				}
				return printJSON(out, toOccurrenceViews(occurrences))
			})
		},
	}
	cmd.Flags().Int("days", 7, "number of days to cover, today included")
	return cmd
}

func newConflictsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List active reminders whose times overlap on a shared weekday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session, out io.Writer) error {
				conflicts, err := s.service.GetConflicts(s.ctx)
				if err != nil {
					return err
				}
				return printJSON(out, toConflictViews(conflicts))
			})
		},
	}
}

// --- schema ---

func newSchemaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the stored and declared schema versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(s *session, out io.Writer) error {
				status, err := s.storage.SchemaStatus(s.ctx)
				if err != nil {
					return err
				}
				return printJSON(out, toSchemaView(status))
			})
		},
	}
}

// --- flag helpers ---

func addReminderFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "reminder title")
	cmd.Flags().String("days", "", `comma-separated weekday names, e.g. "Monday, Wednesday"`)
	cmd.Flags().String("start", "", "start time")
	cmd.Flags().String("end", "", "end time")
	cmd.Flags().String("color", "", "color tag")
	cmd.Flags().String("app-title", "", "course title")
	cmd.Flags().String("description", "", "class description")
	cmd.Flags().String("instructor", "", "instructor name")
	cmd.Flags().Bool("active", true, "whether the reminder is active")
}

// applyReminderFlags copies every flag the user set onto reminder.
func applyReminderFlags(cmd *cobra.Command, reminder *application.Reminder) error {
	flags := cmd.Flags()
	text := map[string]*string{
		"title":       &reminder.Title,
		"start":       &reminder.TimeStart,
		"end":         &reminder.TimeEnd,
		"color":       &reminder.Color,
		"app-title":   &reminder.ApplicationTitle,
		"description": &reminder.ClassDescription,
		"instructor":  &reminder.InstructorName,
	}
	for name, target := range text {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	if flags.Changed("days") {
		raw, _ := flags.GetString("days")
		days, err := parseDays(raw)
		if err != nil {
			return err
		}
		reminder.Weekdays = days
	}
	if flags.Changed("active") {
		reminder.Active, _ = flags.GetBool("active")
	}
	return nil
}

// parseDays reads a comma-separated list of weekday names. Blank entries are
// skipped and repeated days kept once.
func parseDays(raw string) (persistence.Weekdays, error) {
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		day, err := persistence.ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return persistence.NewWeekdays(days...), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid reminder id %q", arg)
	}
	return id, nil
}
