package scoreboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const espnScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/college-football/scoreboard"

// scoreboardResponse mirrors the subset of the ESPN scoreboard payload the
// ticker consumes.
type scoreboardResponse struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	Date         string            `json:"date"`
	Status       *espnStatus       `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnCompetition struct {
	Date        string           `json:"date"`
	Status      *espnStatus      `json:"status"`
	Competitors []espnCompetitor `json:"competitors"`
	Broadcasts  []espnBroadcast  `json:"broadcasts"`
}

type espnCompetitor struct {
	HomeAway string   `json:"homeAway"`
	Score    string   `json:"score"`
	Team     espnTeam `json:"team"`
}

type espnTeam struct {
	DisplayName string `json:"displayName"`
	Location    string `json:"location"`
	Name        string `json:"name"`
}

type espnStatus struct {
	Type espnStatusType `json:"type"`
}

type espnStatusType struct {
	Name        string `json:"name"`
	Completed   bool   `json:"completed"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type espnBroadcast struct {
	Names []string `json:"names"`
}

// espnClient fetches day scoreboards for FBS (groups=80).
type espnClient struct {
	client  *http.Client
	baseURL string
}

func newESPNClient() *espnClient {
	return &espnClient{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: espnScoreboardURL,
	}
}

// dayScores fetches the scoreboard for one day (YYYYMMDD).
func (c *espnClient) dayScores(dateYYYYMMDD string) (*scoreboardResponse, error) {
	params := url.Values{}
	params.Set("dates", dateYYYYMMDD)
	params.Set("groups", "80") // FBS

	resp, err := c.client.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("espn request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("espn returned status %d", resp.StatusCode)
	}

	var sb scoreboardResponse
	if err := json.NewDecoder(resp.Body).Decode(&sb); err != nil {
		return nil, fmt.Errorf("espn decode failed: %w", err)
	}
	return &sb, nil
}

func (e espnEvent) competition() *espnCompetition {
	if len(e.Competitions) == 0 {
		return nil
	}
	return &e.Competitions[0]
}

func (e espnEvent) statusType() espnStatusType {
	if comp := e.competition(); comp != nil && comp.Status != nil {
		return comp.Status.Type
	}
	if e.Status != nil {
		return e.Status.Type
	}
	return espnStatusType{}
}

func teamDisplay(c espnCompetitor) string {
	team := c.Team
	if team.DisplayName != "" {
		return team.DisplayName
	}
	if team.Location != "" {
		return team.Location
	}
	return team.Name
}

// pickSides returns the away and home competitors, falling back to list
// order when the homeAway markers are missing.
func pickSides(competitors []espnCompetitor) (espnCompetitor, espnCompetitor) {
	away := competitors[0]
	home := competitors[len(competitors)-1]
	for _, c := range competitors {
		switch strings.ToLower(c.HomeAway) {
		case "away":
			away = c
		case "home":
			home = c
		}
	}
	return away, home
}

func parseScore(raw string) (int, bool) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// normalizePrev extracts live and final games as display score rows.
func normalizePrev(sb *scoreboardResponse) []ScoreRow {
	rows := []ScoreRow{}
	if sb == nil {
		return rows
	}
	for _, ev := range sb.Events {
		comp := ev.competition()
		if comp == nil || len(comp.Competitors) < 2 {
			continue
		}
		st := ev.statusType()
		name := strings.ToUpper(st.Name)
		completed := st.Completed || name == "STATUS_FINAL" || name == "FINAL"
		inProgress := name == "STATUS_IN_PROGRESS" || name == "IN"
		if !completed && !inProgress {
			continue
		}

		away, home := pickSides(comp.Competitors)
		awayScore, okA := parseScore(away.Score)
		homeScore, okH := parseScore(home.Score)
		if !okA || !okH {
			continue
		}

		status := "LIVE"
		if completed {
			status = "FINAL"
		}
		rows = append(rows, ScoreRow{
			Away:      orDefault(teamDisplay(away), "Away"),
			Home:      orDefault(teamDisplay(home), "Home"),
			AwayScore: awayScore,
			HomeScore: homeScore,
			Status:    status,
		})
	}
	return rows
}

// espn start times omit seconds, e.g. "2025-08-30T16:00Z"
var startLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00"}

// normalizeUpcoming extracts not-yet-started games as kickoff rows, sorted
// by start time.
func normalizeUpcoming(sb *scoreboardResponse, now time.Time) []KickoffRow {
	rows := []KickoffRow{}
	if sb == nil {
		return rows
	}
	for _, ev := range sb.Events {
		comp := ev.competition()
		if comp == nil || len(comp.Competitors) < 2 {
			continue
		}
		st := ev.statusType()
		name := strings.ToUpper(st.Name)
		if name == "STATUS_FINAL" || name == "FINAL" {
			continue
		}

		startRaw := comp.Date
		if startRaw == "" {
			startRaw = ev.Date
		}
		shortDetail := st.ShortDetail
		if shortDetail == "" {
			shortDetail = st.Detail
		}

		var startISO, kickLabel string
		if startRaw != "" {
			parsed, err := parseStart(startRaw)
			if err != nil {
				// Keep a friendly label when the timestamp is unusable
				kickLabel = orDefault(shortDetail, startRaw)
			} else {
				if parsed.Before(now) {
					// Skip games already started/finished
					continue
				}
				startISO = parsed.UTC().Format(time.RFC3339)
			}
		} else {
			kickLabel = shortDetail
		}

		away, home := pickSides(comp.Competitors)
		row := KickoffRow{
			Away:      orDefault(teamDisplay(away), "Away"),
			Home:      orDefault(teamDisplay(home), "Home"),
			Start:     startISO,
			KickLabel: kickLabel,
			Network:   firstBroadcast(comp.Broadcasts),
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Start < rows[j].Start })
	return rows
}

func parseStart(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range startLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func firstBroadcast(broadcasts []espnBroadcast) string {
	for _, b := range broadcasts {
		if len(b.Names) > 0 && b.Names[0] != "" {
			return b.Names[0]
		}
	}
	return ""
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// nextSaturday returns today when it already is Saturday, otherwise the
// upcoming one.
func nextSaturday(today time.Time) time.Time {
	offset := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
	return today.AddDate(0, 0, offset)
}
