package models

// RankingRow is one leaderboard entry. TotalTime and LastSolveTime are the
// zero-padded HH:MM:SS display strings; ordering is done on the numeric
// second values carried alongside, never on the strings.
type RankingRow struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar"`
	Color         string   `json:"color"`
	Members       []string `json:"members"`
	Points        int      `json:"points"`
	Solves        int      `json:"solves"`
	TotalTime     string   `json:"totalTime"`
	LastSolve     string   `json:"lastSolve"`
	LastSolveTime string   `json:"lastSolveTime"`
	IsLastSolver  bool     `json:"isLastSolver"`
	Achievements  []string `json:"achievements"`

	TotalSeconds int64  `json:"-"`
	Code         string `json:"-"`
}

// RankingSummary accompanies the ranking rows with competition-level stats.
type RankingSummary struct {
	Title       string `json:"title"`
	Teams       int    `json:"teams"`
	TotalSolved int    `json:"totalSolved"`
	ResTime     string `json:"resTime"`
}

type Ranking struct {
	Ranking     []RankingRow   `json:"ranking"`
	Competition RankingSummary `json:"competition"`
}
