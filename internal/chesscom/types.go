package chesscom

import (
	"regexp"
	"strconv"
	"time"
)

// Player is one side of a published game.
type Player struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

// Game is the published-API shape of one finished game. Only the fields the
// sync pipeline needs are decoded; months carry more.
type Game struct {
	URL         string `json:"url"`
	PGN         string `json:"pgn"`
	TimeControl string `json:"time_control"`
	TimeClass   string `json:"time_class"`
	Rated       bool   `json:"rated"`
	EndTime     int64  `json:"end_time"`
	Rules       string `json:"rules"`
	White       Player `json:"white"`
	Black       Player `json:"black"`
}

// EndedAt converts the completion timestamp; ok is false when the month data
// carried no usable timestamp.
func (g *Game) EndedAt() (time.Time, bool) {
	if g.EndTime <= 0 {
		return time.Time{}, false
	}
	return time.Unix(g.EndTime, 0).UTC(), true
}

type archiveIndex struct {
	Archives []string `json:"archives"`
}

type monthlyGames struct {
	Games []Game `json:"games"`
}

var archiveMonthRe = regexp.MustCompile(`/(\d{4})/(\d{2})$`)

// ArchiveYearMonth parses the trailing /YYYY/MM of an archive reference.
func ArchiveYearMonth(url string) (year, month int, ok bool) {
	m := archiveMonthRe.FindStringSubmatch(url)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	return year, month, true
}
