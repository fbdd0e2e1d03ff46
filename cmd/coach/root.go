package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var dataFlag string

	ctx := newCommandContext(&dataFlag)

	rootCmd := &cobra.Command{
		Use:           "coach",
		Short:         "Roster management and chess.com game downloads for coaching rounds",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Path to the roster file (overrides COACH_DATA_FILE)")

	rootCmd.AddCommand(newClassCommand(ctx))
	rootCmd.AddCommand(newStudentCommand(ctx))
	rootCmd.AddCommand(newParseCommand(ctx))
	rootCmd.AddCommand(newDownloadCommand(ctx))

	return rootCmd
}
