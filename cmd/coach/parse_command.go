package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kapu/chess-coach-go/internal/pairing"
	"github.com/kapu/chess-coach-go/internal/roster"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse pairing text and show how each side resolves",
		Long: `Parse pairing text (file or stdin) against the current class roster.
Each line like "1. Zhang San vs Li Si" becomes one pairing; both sides are
matched to chess.com usernames.`,
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

			ix := roster.NewIndex(cls.Students)
			matches := make(map[string]roster.Match)
			resolve := func(token string) (string, bool) {
				m, ok := ix.Resolve(token)
				if ok {
					matches[token] = m
				}
				return m.Username, ok
			}

			pairings := pairing.ParseText(text, resolve)
			out := cmd.OutOrStdout()
			if len(pairings) == 0 {
				fmt.Fprintln(out, "No pairings recognized in the input.")
				return nil
			}

			fmt.Fprintf(out, "Class %s: %d pairing(s)\n", className, len(pairings))
			resolved := 0
			for i, p := range pairings {
				fmt.Fprintf(out, "%2d. %s vs %s\n", i+1, describeSide(p.White, matches), describeSide(p.Black, matches))
				if p.Resolved() {
					resolved++
				}
			}
			fmt.Fprintf(out, "Resolved %d/%d pairings fully.\n", resolved, len(pairings))
			return nil
		},
	}
}

func describeSide(s pairing.Side, matches map[string]roster.Match) string {
	if !s.Found {
		return fmt.Sprintf("✗ %s (no match)", s.Token)
	}
	if m, ok := matches[s.Token]; ok {
		return fmt.Sprintf("✓ %s -> %s [%s]", s.Token, s.Username, m.Tier)
	}
	return fmt.Sprintf("✓ %s -> %s", s.Token, s.Username)
}
