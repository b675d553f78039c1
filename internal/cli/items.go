package cli

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List commands",
	}

	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsRmCmd(app))
	cmd.AddCommand(newItemsClearCmd(app))
	cmd.AddCommand(newItemsCopyCmd(app))

	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the stored items in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			return writeOut(cmd, app, s.store.Labels())
		},
	}
}

func newItemsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <label>",
		Short: "Add an item (rejected when empty or already present, ignoring case)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			s.ctrl.SetInput(args[0])
			it, err := s.ctrl.Submit(cmd.Context())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("add %q: %w", args[0], err))
			}
			return writeOut(cmd, app, it.Label)
		},
	}
}

func newItemsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <old> <new>",
		Short: "Replace an item; the updated item moves to the end",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			id, err := s.findExact(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("edit: %w", err))
			}
			if err := s.ctrl.BeginEdit(id); err != nil {
				return writeErr(cmd, err)
			}
			s.ctrl.SetInput(args[1])
			it, err := s.ctrl.Submit(cmd.Context())
			if err != nil {
				return writeErr(cmd, fmt.Errorf("edit %q: %w", args[0], err))
			}
			return writeOut(cmd, app, it.Label)
		},
	}
}

func newItemsRmCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <label>",
		Short: "Remove the item whose label matches exactly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			id, err := s.findExact(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("rm: %w", err))
			}
			if !yes {
				ok, err := confirmPrompt(fmt.Sprintf("Remove %q?", args[0]))
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errAborted)
				}
			}
			it, err := s.ctrl.Remove(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, it.Label)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newItemsClearCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if !yes {
				ok, err := confirmPrompt(fmt.Sprintf("Remove all %d items?", s.store.Len()))
				if err != nil {
					return writeErr(cmd, err)
				}
				if !ok {
					return writeErr(cmd, errAborted)
				}
			}
			if err := s.ctrl.ClearAll(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, []string{})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// writeClipboard is swapped out in tests.
var writeClipboard = func(s string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard available on this system")
	}
	return clipboard.WriteAll(s)
}

func newItemsCopyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <label>",
		Short: "Copy an item's label to the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			id, err := s.findExact(args[0])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("copy: %w", err))
			}
			it, _ := s.store.Find(id)
			if err := writeClipboard(it.Label); err != nil {
				return writeErr(cmd, fmt.Errorf("copy: %w", err))
			}
			return writeOut(cmd, app, it.Label)
		},
	}
}
