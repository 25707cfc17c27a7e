package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/tasks"
)

var errEmptyText = errors.New("task text is empty")

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, ok, err := a.ctl.AddTask(strings.Join(args, " "))
			if !ok {
				return errEmptyText
			}
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", task.ID)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("filter") {
				f, err := tasks.ParseFilter(filter)
				if err != nil {
					return err
				}
				a.ctl.SetFilter(f)
			}
			w := cmd.OutOrStdout()
			view := a.ctl.CurrentView()
			if len(view) == 0 {
				fmt.Fprintln(w, "(no tasks)")
			}
			for _, t := range view {
				formatTask(w, t)
			}
			formatStats(w, a.ctl.CurrentStats())
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, active or completed (default from config)")
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done, or open again",
		Long:  "Toggle flips the completion flag of the task whose id starts with the given prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.ctl.Store().Resolve(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if _, err := a.ctl.ToggleTask(t.ID); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			verb := "Completed"
			if t.Completed {
				verb = "Reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q\n", verb, t.Text)
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.ctl.Store().Resolve(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if _, err := a.ctl.DeleteTask(t.ID); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", t.Text)
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.ctl.ClearCompleted()
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed\n", n)
			return nil
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print task counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStats(cmd.OutOrStdout(), a.ctl.CurrentStats())
			return nil
		},
	}
}
