// Package syncer turns resolved pairings into PGN files on disk. It walks
// each pair's monthly archives newest first, keeps the games the two players
// played against each other recently, and writes a per-round report.
package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/chess-coach-go/internal/chesscom"
	"github.com/kapu/chess-coach-go/internal/msgcat"
	"github.com/kapu/chess-coach-go/internal/obslog"
	"github.com/kapu/chess-coach-go/internal/pairing"
	"github.com/kapu/chess-coach-go/pkg/reportdto"
)

// Failure reasons that originate here rather than from the archive API.
const (
	ReasonResolution   = "resolution_failure"
	ReasonNoArchives   = "no_archives"
	ReasonNoRecent     = "no_recent_games"
	ReasonWriteFailure = "write_failure"
)

const reportFileName = "download_report.txt"

// ArchiveSource is the slice of the archive client the synchronizer needs.
type ArchiveSource interface {
	ListArchives(ctx context.Context, username string) ([]string, error)
	FetchArchive(ctx context.Context, url string) ([]chesscom.Game, error)
}

// Options tune the recency windows and request pacing.
type Options struct {
	RecentDays    int           // keep games that ended within this many days
	MonthLookback int           // archives scanned when the recent window is empty
	RecentMonths  int           // calendar months considered "recent"
	Pacing        time.Duration // delay between archive fetches
}

func (o Options) withDefaults() Options {
	if o.RecentDays <= 0 {
		o.RecentDays = 14
	}
	if o.MonthLookback <= 0 {
		o.MonthLookback = 18
	}
	if o.RecentMonths <= 0 {
		o.RecentMonths = 2
	}
	if o.Pacing < 0 {
		o.Pacing = 0
	}
	return o
}

type Synchronizer struct {
	src      ArchiveSource
	opts     Options
	progress func(string)
	now      func() time.Time
	log      *zap.Logger
	cat      *msgcat.Catalog
}

type Option func(*Synchronizer)

// WithProgress installs a callback receiving human-readable progress lines.
func WithProgress(fn func(string)) Option {
	return func(s *Synchronizer) { s.progress = fn }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Synchronizer) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Synchronizer) {
		if log != nil {
			s.log = log
		}
	}
}

func WithCatalog(cat *msgcat.Catalog) Option {
	return func(s *Synchronizer) {
		if cat != nil {
			s.cat = cat
		}
	}
}

func New(src ArchiveSource, opts Options, o ...Option) *Synchronizer {
	s := &Synchronizer{
		src:      src,
		opts:     opts.withDefaults(),
		progress: func(string) {},
		now:      time.Now,
		log:      obslog.L(),
	}
	for _, fn := range o {
		fn(s)
	}
	if s.cat == nil {
		cat, err := msgcat.New("")
		if err != nil {
			// embedded defaults are validated at build time
			panic(fmt.Sprintf("load embedded messages: %v", err))
		}
		s.cat = cat
	}
	return s
}

// Run downloads every pairing of one round into a fresh batch folder and
// writes the report file there. The report is written even when the run is
// cut short by ctx; in that case the context error is returned alongside it.
func (s *Synchronizer) Run(ctx context.Context, root, class, round string, pairings []pairing.Pairing) (*reportdto.Report, error) {
	dir, err := PrepareBatchDir(root, class, round, s.now())
	if err != nil {
		return nil, err
	}

	rep := &reportdto.Report{
		RunID:     uuid.NewString(),
		Class:     class,
		Round:     round,
		StartedAt: s.now(),
		Total:     len(pairings),
		Dir:       dir,
	}

	var runErr error
	for i, p := range pairings {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		s.say("progress.pairing", map[string]any{
			"Index": i + 1, "Total": len(pairings),
			"White": p.White.Token, "Black": p.Black.Token,
		})

		if !p.Resolved() {
			rep.Failures = append(rep.Failures, reportdto.Failure{
				Index:  i + 1,
				White:  p.White.Token,
				Black:  p.Black.Token,
				Reason: ReasonResolution,
				Detail: unresolvedDetail(p),
			})
			continue
		}

		written, reason, detail := s.syncPairing(ctx, dir, p)
		if written > 0 {
			rep.Succeeded++
			continue
		}
		rep.Failures = append(rep.Failures, reportdto.Failure{
			Index:  i + 1,
			White:  p.White.Token,
			Black:  p.Black.Token,
			Reason: reason,
			Detail: detail,
		})
	}

	rep.FinishedAt = s.now()
	rep.Failed = len(rep.Failures)

	if err := s.writeReport(dir, rep); err != nil {
		s.log.Warn("report write failed", zap.String("dir", dir), zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}

	s.say("progress.done", map[string]any{
		"Succeeded": rep.Succeeded, "Total": rep.Total, "Dir": dir,
	})
	return rep, runErr
}

// syncPairing downloads the recent games between one resolved pair. It
// returns the number of files written; when zero, the reason and detail
// describe the most specific failure observed.
func (s *Synchronizer) syncPairing(ctx context.Context, dir string, p pairing.Pairing) (int, string, string) {
	userA := strings.ToLower(strings.TrimSpace(p.White.Username))
	userB := strings.ToLower(strings.TrimSpace(p.Black.Username))
	if userA == "" || userB == "" {
		return 0, ReasonResolution, "invalid username"
	}

	s.say("progress.fetch", map[string]any{"Username": userA})
	archives, listErr := s.src.ListArchives(ctx, userA)
	if listErr != nil || len(archives) == 0 {
		// the opponent's archives contain the same games
		s.say("progress.fetch", map[string]any{"Username": userB})
		alt, altErr := s.src.ListArchives(ctx, userB)
		switch {
		case altErr == nil && len(alt) > 0:
			archives = alt
		case listErr != nil:
			return 0, string(chesscom.ReasonOf(listErr)), listErr.Error()
		case altErr != nil:
			return 0, string(chesscom.ReasonOf(altErr)), altErr.Error()
		default:
			return 0, ReasonNoArchives, ""
		}
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, -s.opts.RecentDays)
	selected := s.selectArchives(archives, now)

	written := 0
	writeFailures := 0
	var fetchErr error
	for i := len(selected) - 1; i >= 0; i-- { // newest first
		if err := ctx.Err(); err != nil {
			break
		}
		games, err := s.src.FetchArchive(ctx, selected[i])
		if err != nil {
			fetchErr = err
			s.log.Warn("archive fetch failed", zap.String("url", selected[i]), zap.Error(err))
			continue
		}
		for _, g := range games {
			if !matchesPair(g, userA, userB) {
				continue
			}
			endedAt, hasEnd := g.EndedAt()
			if hasEnd && endedAt.Before(cutoff) {
				continue
			}
			if strings.TrimSpace(g.PGN) == "" {
				continue
			}
			name := s.gameFileName(g, written+1, now)
			path := filepath.Join(dir, name)
			if err := writePGN(path, g.PGN); err != nil {
				writeFailures++
				s.log.Warn("pgn write failed", zap.String("path", path), zap.Error(err))
				continue
			}
			written++
			s.say("progress.saved", map[string]any{"File": name})
			if moves, outcome, perr := summarizePGN(g.PGN); perr == nil {
				s.log.Debug("saved game",
					zap.String("file", name), zap.Int("moves", moves), zap.String("outcome", outcome))
			}
		}
		if s.opts.Pacing > 0 && i > 0 {
			if err := sleepCtx(ctx, s.opts.Pacing); err != nil {
				break
			}
		}
	}

	if written > 0 {
		return written, "", ""
	}
	switch {
	case writeFailures > 0:
		return 0, ReasonWriteFailure, fmt.Sprintf("%d file(s) could not be written", writeFailures)
	case fetchErr != nil:
		return 0, string(chesscom.ReasonOf(fetchErr)), fetchErr.Error()
	default:
		return 0, ReasonNoRecent, ""
	}
}

// selectArchives keeps the archives from the last RecentMonths calendar
// months, falling back to the newest MonthLookback when none qualify.
// The API lists archives oldest first; order is preserved.
func (s *Synchronizer) selectArchives(archives []string, now time.Time) []string {
	allowed := make(map[[2]int]bool, s.opts.RecentMonths)
	cur := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < s.opts.RecentMonths; i++ {
		m := cur.AddDate(0, -i, 0)
		allowed[[2]int{m.Year(), int(m.Month())}] = true
	}

	var recent []string
	for _, url := range archives {
		year, month, ok := chesscom.ArchiveYearMonth(url)
		if ok && allowed[[2]int{year, month}] {
			recent = append(recent, url)
		}
	}
	if len(recent) > 0 {
		return recent
	}
	if len(archives) > s.opts.MonthLookback {
		return archives[len(archives)-s.opts.MonthLookback:]
	}
	return archives
}

func (s *Synchronizer) gameFileName(g chesscom.Game, seq int, now time.Time) string {
	ts := now
	if endedAt, ok := g.EndedAt(); ok {
		ts = endedAt
	}
	return fmt.Sprintf("%s_vs_%s_%s_%d.pgn",
		sanitizeName(g.White.Username), sanitizeName(g.Black.Username),
		ts.Format("20060102_1504"), seq)
}

func (s *Synchronizer) writeReport(dir string, rep *reportdto.Report) error {
	var b strings.Builder
	line := func(key string, data any) error {
		out, err := s.cat.Render(key, data)
		if err != nil {
			return err
		}
		b.WriteString(out)
		b.WriteByte('\n')
		return nil
	}

	if err := line("report.title", map[string]any{"Class": rep.Class, "Round": rep.Round}); err != nil {
		return err
	}
	if err := line("report.summary", map[string]any{
		"Total": rep.Total, "Succeeded": rep.Succeeded, "Failed": rep.Failed,
	}); err != nil {
		return err
	}
	if len(rep.Failures) > 0 {
		if err := line("report.failures_heading", nil); err != nil {
			return err
		}
		for _, f := range rep.Failures {
			if err := line("report.failure", map[string]any{
				"Index": f.Index, "White": f.White, "Black": f.Black,
				"Reason": f.Reason, "Detail": f.Detail,
			}); err != nil {
				return err
			}
		}
	}
	return os.WriteFile(filepath.Join(dir, reportFileName), []byte(b.String()), 0o644)
}

func (s *Synchronizer) say(key string, data any) {
	out, err := s.cat.Render(key, data)
	if err != nil {
		s.log.Debug("message render failed", zap.String("key", key), zap.Error(err))
		return
	}
	s.progress(out)
}

func matchesPair(g chesscom.Game, a, b string) bool {
	w := strings.ToLower(g.White.Username)
	bl := strings.ToLower(g.Black.Username)
	return (w == a && bl == b) || (w == b && bl == a)
}

func unresolvedDetail(p pairing.Pairing) string {
	var missing []string
	if !p.White.Found {
		missing = append(missing, p.White.Token)
	}
	if !p.Black.Found {
		missing = append(missing, p.Black.Token)
	}
	return "no roster match for: " + strings.Join(missing, ", ")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
