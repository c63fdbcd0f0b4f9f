package scoreboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(status string, completed bool, date string, away, home espnCompetitor) espnEvent {
	return espnEvent{
		Competitions: []espnCompetition{{
			Date:        date,
			Status:      &espnStatus{Type: espnStatusType{Name: status, Completed: completed}},
			Competitors: []espnCompetitor{away, home},
		}},
	}
}

func competitor(side, name, score string) espnCompetitor {
	return espnCompetitor{HomeAway: side, Score: score, Team: espnTeam{DisplayName: name}}
}

func TestNormalizePrev(t *testing.T) {
	sb := &scoreboardResponse{Events: []espnEvent{
		event("STATUS_FINAL", true, "", competitor("away", "Georgia", "31"), competitor("home", "Clemson", "3")),
		event("STATUS_IN_PROGRESS", false, "", competitor("away", "Ohio State", "14"), competitor("home", "Texas", "7")),
		event("STATUS_SCHEDULED", false, "", competitor("away", "Alabama", "0"), competitor("home", "Auburn", "0")),
		// unparsable score rows are skipped entirely
		event("STATUS_FINAL", true, "", competitor("away", "Navy", "n/a"), competitor("home", "Army", "21")),
	}}

	rows := normalizePrev(sb)
	require.Len(t, rows, 2)

	assert.Equal(t, ScoreRow{Away: "Georgia", Home: "Clemson", AwayScore: 31, HomeScore: 3, Status: "FINAL"}, rows[0])
	assert.Equal(t, "LIVE", rows[1].Status)
	assert.Equal(t, 14, rows[1].AwayScore)
}

func TestNormalizePrevHandlesMissingSides(t *testing.T) {
	// homeAway markers absent: first entry is away, last is home
	ev := espnEvent{
		Competitions: []espnCompetition{{
			Status:      &espnStatus{Type: espnStatusType{Name: "STATUS_FINAL", Completed: true}},
			Competitors: []espnCompetitor{competitor("", "Tulane", "20"), competitor("", "Memphis", "17")},
		}},
	}
	rows := normalizePrev(&scoreboardResponse{Events: []espnEvent{ev}})
	require.Len(t, rows, 1)
	assert.Equal(t, "Tulane", rows[0].Away)
	assert.Equal(t, "Memphis", rows[0].Home)
}

func TestNormalizeUpcoming(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	sb := &scoreboardResponse{Events: []espnEvent{
		event("STATUS_SCHEDULED", false, "2026-09-05T20:00Z", competitor("away", "LSU", ""), competitor("home", "Florida", "")),
		event("STATUS_SCHEDULED", false, "2026-09-05T16:00Z", competitor("away", "Iowa", ""), competitor("home", "Iowa State", "")),
		// finals never show as upcoming
		event("STATUS_FINAL", true, "2026-09-05T16:00Z", competitor("away", "Duke", ""), competitor("home", "Elon", "")),
		// already kicked off
		event("STATUS_IN_PROGRESS", false, "2026-09-01T11:00Z", competitor("away", "SMU", ""), competitor("home", "TCU", "")),
	}}

	rows := normalizeUpcoming(sb, now)
	require.Len(t, rows, 2)

	// sorted by start time
	assert.Equal(t, "Iowa", rows[0].Away)
	assert.Equal(t, "2026-09-05T16:00:00Z", rows[0].Start)
	assert.Equal(t, "LSU", rows[1].Away)
}

func TestNormalizeUpcomingUnparsableStartKeepsLabel(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	ev := espnEvent{
		Competitions: []espnCompetition{{
			Date: "TBD",
			Status: &espnStatus{Type: espnStatusType{
				Name: "STATUS_SCHEDULED", ShortDetail: "Sat 2:30 PM",
			}},
			Competitors: []espnCompetitor{competitor("away", "Baylor", ""), competitor("home", "Rice", "")},
			Broadcasts:  []espnBroadcast{{Names: []string{"ESPN2"}}},
		}},
	}

	rows := normalizeUpcoming(&scoreboardResponse{Events: []espnEvent{ev}}, now)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Start)
	assert.Equal(t, "Sat 2:30 PM", rows[0].KickLabel)
	assert.Equal(t, "ESPN2", rows[0].Network)
}

func TestNextSaturday(t *testing.T) {
	// Tuesday 2026-09-01 -> Saturday 2026-09-05
	tue := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "20260905", nextSaturday(tue).Format("20060102"))

	// a Saturday maps to itself
	sat := time.Date(2026, time.September, 5, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "20260905", nextSaturday(sat).Format("20060102"))

	// Sunday rolls to the following Saturday
	sun := time.Date(2026, time.September, 6, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "20260912", nextSaturday(sun).Format("20060102"))
}
