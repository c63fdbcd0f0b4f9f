// Package scoreboard maintains a cached college-football ticker payload for
// the office TV board. Data comes from the public ESPN scoreboard feed with
// optional betting lines from the-odds-api; every upstream failure degrades
// to the last good payload or a bundled fallback file.
package scoreboard

import "caseboard/config"

// Labels names the two ticker lanes.
type Labels struct {
	Prev string `json:"prev"`
	Next string `json:"next"`
}

func defaultLabels() Labels {
	return Labels{Prev: "Live/Finals", Next: "Kickoffs"}
}

// ScoreRow is one live or completed game.
type ScoreRow struct {
	Away      string `json:"away"`
	Home      string `json:"home"`
	AwayScore int    `json:"away_score"`
	HomeScore int    `json:"home_score"`
	Status    string `json:"status"` // FINAL or LIVE
}

// KickoffRow is one not-yet-started game. Start is RFC 3339 UTC when the
// feed timestamp parsed; KickLabel carries the feed's friendly label when
// it did not.
type KickoffRow struct {
	Away      string    `json:"away"`
	Home      string    `json:"home"`
	Start     string    `json:"start,omitempty"`
	KickLabel string    `json:"kick_label,omitempty"`
	Network   string    `json:"network,omitempty"`
	Odds      *OddsLine `json:"odds,omitempty"`
}

// OddsLine is a consensus betting line for a matchup.
type OddsLine struct {
	Fav       string   `json:"fav,omitempty"`
	Spread    *float64 `json:"spread"`
	Moneyline *float64 `json:"ml"`
	Total     *float64 `json:"ou"`
	Book      string   `json:"book"`
}

// Payload is the ticker document served to the TV board.
type Payload struct {
	GeneratedAt string       `json:"generated_at"`
	Labels      Labels       `json:"labels"`
	Prev        []ScoreRow   `json:"prev"`
	Next        []KickoffRow `json:"next"`
}

// Default is the process-wide ticker cache, set by Initialize.
var Default *Cache

func Initialize(cfg *config.Config) {
	Default = NewCache(cfg)
}
