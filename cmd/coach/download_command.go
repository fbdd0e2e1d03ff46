package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kapu/chess-coach-go/internal/pairing"
	"github.com/kapu/chess-coach-go/internal/roster"
	"github.com/kapu/chess-coach-go/internal/syncer"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var round string

	cmd := &cobra.Command{
		Use:   "download [file]",
		Short: "Download recent games for every pairing in a round",
		Long: `Parse pairing text (file or stdin), resolve both sides against the
current class roster, and download each pair's recent chess.com games into a
per-round folder. A download_report.txt summarizing successes and failures is
written alongside the PGN files. Pairings that fail do not stop the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTextArg(args)
			if err != nil {
				return err
			}
			_, _, className, cls, err := ctx.loadCurrent()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			ix := roster.NewIndex(cls.Students)
			pairings := pairing.ParseText(text, ix.ResolveUsername)
			if len(pairings) == 0 {
				return fmt.Errorf("no pairings recognized in the input")
			}

			client, err := ctx.archiveClient()
			if err != nil {
				return err
			}
			cat, err := ctx.catalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dl := syncer.New(client, syncer.Options{
				RecentDays:    cfg.RecentDays,
				MonthLookback: cfg.ArchiveMonthLimit,
				RecentMonths:  cfg.ArchiveRecentMonths,
				Pacing:        cfg.PacingDelay,
			},
				syncer.WithCatalog(cat),
				syncer.WithProgress(func(line string) { fmt.Fprintln(out, line) }),
			)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rep, runErr := dl.Run(runCtx, cfg.DownloadRoot, className, round, pairings)
			if rep != nil {
				fmt.Fprintf(out, "Report: %s/%s\n", rep.Dir, "download_report.txt")
			}
			// per-pairing failures are in the report, not the exit code
			return runErr
		},
	}

	cmd.Flags().StringVarP(&round, "round", "r", "1", "Round label used for the batch folder name")
	return cmd
}
