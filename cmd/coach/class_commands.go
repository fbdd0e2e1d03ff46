package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newClassCommand(ctx *commandContext) *cobra.Command {
	classCmd := &cobra.Command{
		Use:   "class",
		Short: "Manage coaching classes",
	}

	classCmd.AddCommand(newClassListCommand(ctx))
	classCmd.AddCommand(newClassCreateCommand(ctx))
	classCmd.AddCommand(newClassDeleteCommand(ctx))
	classCmd.AddCommand(newClassDescribeCommand(ctx))
	classCmd.AddCommand(newClassUseCommand(ctx))

	return classCmd
}

func newClassListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.store()
			if err != nil {
				return err
			}
			f, err := st.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			names := f.ClassNames()
			if len(names) == 0 {
				fmt.Fprintln(out, "No classes yet. Create one with `coach class create <name>`.")
				return nil
			}
			for _, name := range names {
				cls, _ := f.Class(name)
				marker := " "
				if name == f.CurrentClass {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-20s %3d students  created %s", marker, name, len(cls.Students), cls.CreatedDate)
				if cls.Description != "" {
					fmt.Fprintf(out, "  %s", cls.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func newClassCreateCommand(ctx *commandContext) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a class and select it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.store()
			if err != nil {
				return err
			}
			f, err := st.Load()
			if err != nil {
				return err
			}
			if _, err := f.CreateClass(args[0], description, time.Now()); err != nil {
				return err
			}
			if err := st.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created class %s (now selected)\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Class description")
	return cmd
}

func newClassDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.store()
			if err != nil {
				return err
			}
			f, err := st.Load()
			if err != nil {
				return err
			}
			if err := f.DeleteClass(args[0]); err != nil {
				return err
			}
			if err := st.Save(f); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deleted class %s\n", args[0])
			if f.CurrentClass != "" {
				fmt.Fprintf(out, "Current class is now %s\n", f.CurrentClass)
			}
			return nil
		},
	}
}

func newClassDescribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <name> <description>",
		Short: "Set a class description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.store()
			if err != nil {
				return err
			}
			f, err := st.Load()
			if err != nil {
				return err
			}
			if err := f.SetDescription(args[0], args[1]); err != nil {
				return err
			}
			return st.Save(f)
		},
	}
}

func newClassUseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Select the class later commands operate on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.store()
			if err != nil {
				return err
			}
			f, err := st.Load()
			if err != nil {
				return err
			}
			if err := f.Use(args[0]); err != nil {
				return err
			}
			if err := st.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using class %s\n", args[0])
			return nil
		},
	}
}
