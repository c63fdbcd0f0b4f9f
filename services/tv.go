package services

import (
	"sort"
	"strings"
	"time"

	"caseboard/models"
	"caseboard/storage"
)

// TVCase is a case decorated with colleague-task notification flags for the
// TV board.
type TVCase struct {
	models.Case
	HasUnreviewedColleagueTasks  bool `json:"has_unreviewed_colleague_tasks"`
	UnreviewedColleagueTaskCount int  `json:"unreviewed_colleague_task_count"`
}

// TVPayload is the read-only feed consumed by the TV display.
type TVPayload struct {
	GeneratedAt string   `json:"generated_at"`
	Cases       []TVCase `json:"cases"`
}

// TVCases assembles the TV feed: archived cases excluded, remaining cases
// recomputed and ordered by urgency (top priority first, then
// needs-attention, then days until next due, then client name).
func TVCases(st *storage.FileStore) (*TVPayload, error) {
	file, err := st.Load()
	if err != nil {
		return nil, err
	}

	cases := make([]models.Case, 0, len(file.Cases))
	for _, c := range file.Cases {
		if c.Archived {
			continue
		}
		c.Recompute()
		cases = append(cases, c)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	urgencyKey := func(c models.Case) (int, int, int, string) {
		days := 9999
		if c.NextDue != nil {
			days = int(c.NextDue.Time.Sub(today).Hours() / 24)
		}
		att := 1
		if c.Attention == models.AttentionNeeds {
			att = 0
		}
		// Top priority bumps earlier without disrupting core grouping
		pri := 1
		if c.TopPriority {
			pri = 0
		}
		return pri, att, days, strings.ToLower(c.ClientName)
	}
	sort.SliceStable(cases, func(i, j int) bool {
		pi, ai, di, ni := urgencyKey(cases[i])
		pj, aj, dj, nj := urgencyKey(cases[j])
		if pi != pj {
			return pi < pj
		}
		if ai != aj {
			return ai < aj
		}
		if di != dj {
			return di < dj
		}
		return ni < nj
	})

	payload := &TVPayload{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Cases:       make([]TVCase, 0, len(cases)),
	}
	for _, c := range cases {
		unreviewed := c.UnreviewedTaskCount()
		payload.Cases = append(payload.Cases, TVCase{
			Case:                         c,
			HasUnreviewedColleagueTasks:  unreviewed > 0,
			UnreviewedColleagueTaskCount: unreviewed,
		})
	}
	return payload, nil
}
