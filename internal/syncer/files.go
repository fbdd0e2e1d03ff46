package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeNameRe = regexp.MustCompile(`[^0-9A-Za-z\-_]`)

// sanitizeName makes a string safe for use in file and directory names.
func sanitizeName(s string) string {
	return unsafeNameRe.ReplaceAllString(strings.TrimSpace(s), "_")
}

// PrepareBatchDir creates the per-round batch folder under root. An
// existing folder is never reused; a timestamp suffix keeps reruns apart.
func PrepareBatchDir(root, class, round string, now time.Time) (string, error) {
	base := fmt.Sprintf("%s-round-%s", sanitizeName(class), sanitizeName(round))
	dir := filepath.Join(root, base)
	if _, err := os.Stat(dir); err == nil {
		dir = filepath.Join(root, base+now.Format("_20060102_150405"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create batch dir: %w", err)
	}
	return dir, nil
}

// writePGN writes one game file, guaranteeing a trailing newline so
// concatenated PGNs stay parseable.
func writePGN(path, pgn string) error {
	if !strings.HasSuffix(pgn, "\n") {
		pgn += "\n"
	}
	return os.WriteFile(path, []byte(pgn), 0o644)
}
