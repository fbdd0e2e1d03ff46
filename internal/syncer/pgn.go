package syncer

import (
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// summarizePGN parses a game record and reports its length and result.
// It is advisory only; a PGN the parser rejects is still saved as-is.
func summarizePGN(pgn string) (moves int, outcome string, err error) {
	opt, err := nchess.PGN(strings.NewReader(pgn))
	if err != nil {
		return 0, "", err
	}
	g := nchess.NewGame(opt)
	return len(g.Moves()), g.Outcome().String(), nil
}
