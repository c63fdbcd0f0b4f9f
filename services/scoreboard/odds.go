package scoreboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

const oddsAPIBaseURL = "https://api.the-odds-api.com/v4/sports/americanfootball_ncaaf/odds"

// The upstream plan allows a small hourly quota, so betting lines refresh
// at most once per hour and only during waking hours.
const (
	oddsWindowStartHour = 8
	oddsWindowEndHour   = 22
	oddsMinInterval     = time.Hour
)

type oddsGame struct {
	AwayTeam   string          `json:"away_team"`
	HomeTeam   string          `json:"home_team"`
	Bookmakers []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Point *float64 `json:"point"`
}

// oddsIndex keeps the latest betting lines keyed by normalized matchup and
// throttles upstream fetches.
type oddsIndex struct {
	mu        sync.Mutex
	entries   map[string]*OddsLine
	lastFetch time.Time
	fetch     func() ([]oddsGame, error)
	now       func() time.Time
	logf      func(format string, args ...interface{})
}

func newOddsIndex(apiKey string, now func() time.Time, logf func(string, ...interface{})) *oddsIndex {
	idx := &oddsIndex{
		entries: map[string]*OddsLine{},
		now:     now,
		logf:    logf,
	}
	client := &http.Client{Timeout: 20 * time.Second}
	idx.fetch = func() ([]oddsGame, error) {
		if apiKey == "" {
			return nil, nil
		}
		return fetchOddsGames(client, apiKey)
	}
	return idx
}

func fetchOddsGames(client *http.Client, apiKey string) ([]oddsGame, error) {
	params := url.Values{}
	params.Set("apiKey", apiKey)
	params.Set("regions", "us")
	params.Set("markets", "h2h,spreads,totals")
	params.Set("oddsFormat", "american")
	params.Set("dateFormat", "iso")

	resp, err := client.Get(oddsAPIBaseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("odds request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds api returned status %d", resp.StatusCode)
	}

	var games []oddsGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("odds decode failed: %w", err)
	}
	return games, nil
}

func (x *oddsIndex) shouldFetch(now time.Time) bool {
	hour := now.Hour()
	if hour < oddsWindowStartHour || hour > oddsWindowEndHour {
		return false
	}
	return x.lastFetch.IsZero() || now.Sub(x.lastFetch) >= oddsMinInterval
}

// lines returns the current betting-line index, refreshing from upstream
// when the throttle window allows. Fetch failures keep the previous lines.
func (x *oddsIndex) lines() map[string]*OddsLine {
	x.mu.Lock()
	defer x.mu.Unlock()

	now := x.now()
	if x.shouldFetch(now) {
		games, err := x.fetch()
		if err != nil {
			x.logf("[WARNING] odds fetch failed: %v", err)
		} else if games != nil {
			x.entries = indexOdds(games)
			x.lastFetch = now
		}
	}
	return x.entries
}

var (
	teamNoiseRe = regexp.MustCompile(`\b(university of|univ\.?|the)\b`)
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

// normTeam reduces a team name to a comparable token so ESPN and odds-feed
// spellings of the same school collide.
func normTeam(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", " ")
	s = teamNoiseRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ReplaceAll(s, "st.", "saint")
	s = strings.ReplaceAll(s, " st ", " saint ")
	return nonAlnumRe.ReplaceAllString(s, "")
}

func matchupKey(away, home string) string {
	return normTeam(away) + "@@" + normTeam(home)
}

// indexOdds flattens bookmaker markets into one consensus line per game:
// the favored side with its spread, a moneyline, and the over/under total.
func indexOdds(games []oddsGame) map[string]*OddsLine {
	out := map[string]*OddsLine{}
	for _, g := range games {
		line := &OddsLine{Book: "consensus"}
		for _, bm := range g.Bookmakers {
			for _, market := range bm.Markets {
				switch market.Key {
				case "spreads":
					for _, o := range market.Outcomes {
						if o.Name == g.HomeTeam || o.Name == "Home" {
							line.Spread = o.Point
							if o.Point != nil && *o.Point < 0 {
								line.Fav = g.HomeTeam
							}
						}
						if (o.Name == g.AwayTeam || o.Name == "Away") && line.Spread == nil {
							line.Spread = o.Point
							if o.Point != nil && *o.Point < 0 {
								line.Fav = g.AwayTeam
							}
						}
					}
				case "h2h":
					for _, o := range market.Outcomes {
						if o.Name != g.HomeTeam && o.Name != g.AwayTeam {
							continue
						}
						if line.Fav == "" || (o.Price != nil && *o.Price < 0) {
							line.Fav = o.Name
						}
						if o.Price != nil {
							line.Moneyline = o.Price
						}
					}
				case "totals":
					for _, o := range market.Outcomes {
						if o.Point != nil {
							line.Total = o.Point
						}
					}
				}
			}
			if line.Fav != "" && line.Spread != nil && line.Moneyline != nil && line.Total != nil {
				break
			}
		}
		out[matchupKey(g.AwayTeam, g.HomeTeam)] = line
	}
	return out
}
