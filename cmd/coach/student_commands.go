package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kapu/chess-coach-go/internal/roster"
)

func newStudentCommand(ctx *commandContext) *cobra.Command {
	studentCmd := &cobra.Command{
		Use:   "student",
		Short: "Manage the current class roster",
	}

	studentCmd.AddCommand(newStudentListCommand(ctx))
	studentCmd.AddCommand(newStudentAddCommand(ctx))
	studentCmd.AddCommand(newStudentRemoveCommand(ctx))
	studentCmd.AddCommand(newStudentImportCommand(ctx))

	return studentCmd
}

func newStudentListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List students in the current class",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, className, cls, err := ctx.loadCurrent()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cls.Students) == 0 {
				fmt.Fprintf(out, "Class %s has no students yet.\n", className)
				return nil
			}
			names := make([]string, 0, len(cls.Students))
			for n := range cls.Students {
				names = append(names, n)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "Class %s (%d students):\n", className, len(names))
			for _, n := range names {
				fmt.Fprintf(out, "  %-24s %s\n", n, cls.Students[n])
			}
			return nil
		},
	}
}

func newStudentAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <username>",
		Short: "Add or update one student",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, f, _, cls, err := ctx.loadCurrent()
			if err != nil {
				return err
			}
			if err := cls.AddStudent(args[0], args[1]); err != nil {
				return err
			}
			if err := st.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s -> %s\n", args[0], roster.SanitizeUsername(args[1]))
			return nil
		},
	}
}

func newStudentRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove one student by real name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, f, _, cls, err := ctx.loadCurrent()
			if err != nil {
				return err
			}
			if !cls.RemoveStudent(args[0]) {
				return fmt.Errorf("student %q not found", args[0])
			}
			if err := st.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newStudentImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import students from a list (file or stdin)",
		Long: `Import students from free-form list text, one student per line.
Accepted line shapes include "1. Zhang San -> zhangsan123", "Li Si: lisi99"
and plain "Wang Wu wangwu_chess". Existing names are overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			parsed := roster.ParseStudentList(text)
			if len(parsed) == 0 {
				return fmt.Errorf("no students recognized in the input")
			}
			st, f, className, cls, err := ctx.loadCurrent()
			if err != nil {
				return err
			}
			added := cls.Merge(parsed)
			if err := st.Save(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d student(s) into %s\n", added, className)
			return nil
		},
	}
}
