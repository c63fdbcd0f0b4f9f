package scoreboard

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"caseboard/config"
)

const cacheTTL = 120 * time.Second

// Cache holds the last assembled ticker payload. The clock and the upstream
// fetchers are injectable so refresh behavior is testable without the
// network.
type Cache struct {
	mu    sync.Mutex
	stamp time.Time
	data  Payload

	ttl             time.Duration
	now             func() time.Time
	fetchDay        func(dateYYYYMMDD string) (*scoreboardResponse, error)
	odds            *oddsIndex
	fallbackEnabled bool
	fallbackPath    string
	logf            func(format string, args ...interface{})
}

func NewCache(cfg *config.Config) *Cache {
	espn := newESPNClient()
	c := &Cache{
		ttl:             cacheTTL,
		now:             time.Now,
		fetchDay:        espn.dayScores,
		fallbackEnabled: cfg.TickerUseFallback,
		fallbackPath:    cfg.TickerFallbackPath,
		logf:            log.Printf,
	}
	c.odds = newOddsIndex(cfg.OddsAPIKey, c.clock, c.log)
	return c
}

func (c *Cache) clock() time.Time { return c.now() }

func (c *Cache) log(format string, args ...interface{}) { c.logf(format, args...) }

// Refresh rebuilds the payload from the upstream feeds. Each source fails
// independently; a refresh never returns an error and never panics the
// caller.
func (c *Cache) Refresh() {
	now := c.now()

	prev := []ScoreRow{}
	if sb, err := c.fetchDay(now.Format("20060102")); err != nil {
		c.log("[WARNING] ticker: today's scoreboard fetch failed: %v", err)
	} else {
		prev = normalizePrev(sb)
	}

	next := []KickoffRow{}
	sat := nextSaturday(now)
	if sb, err := c.fetchDay(sat.Format("20060102")); err != nil {
		c.log("[WARNING] ticker: saturday scoreboard fetch failed: %v", err)
	} else {
		next = normalizeUpcoming(sb, now)
	}
	tomorrow := now.AddDate(0, 0, 1)
	if sb, err := c.fetchDay(tomorrow.Format("20060102")); err != nil {
		c.log("[WARNING] ticker: tomorrow's scoreboard fetch failed: %v", err)
	} else {
		next = append(next, normalizeUpcoming(sb, now)...)
	}

	if len(next) > 0 {
		idx := c.odds.lines()
		for i := range next {
			if line, ok := idx[matchupKey(next[i].Away, next[i].Home)]; ok {
				next[i].Odds = line
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Static fallback only when both lanes came back empty and the
	// operator opted in.
	if len(prev) == 0 && len(next) == 0 && c.fallbackEnabled {
		if fb := c.loadFallback(); fb != nil {
			c.data = *fb
			c.stamp = now
			return
		}
	}

	c.data = Payload{
		GeneratedAt: now.UTC().Truncate(time.Second).Format(time.RFC3339),
		Labels:      defaultLabels(),
		Prev:        prev,
		Next:        next,
	}
	c.stamp = now
}

// GetCachedPayload serves the cached ticker, refreshing first when the
// cache is older than its TTL. A refresh that yields nothing still serves
// whatever was cached before.
func (c *Cache) GetCachedPayload() Payload {
	c.mu.Lock()
	stale := c.stamp.IsZero() || c.now().Sub(c.stamp) > c.ttl
	c.mu.Unlock()

	if stale {
		c.Refresh()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if stale && len(c.data.Prev) == 0 && len(c.data.Next) == 0 && c.fallbackEnabled {
		if fb := c.loadFallback(); fb != nil {
			return *fb
		}
	}
	out := c.data
	if out.Labels == (Labels{}) {
		out.Labels = defaultLabels()
	}
	if out.Prev == nil {
		out.Prev = []ScoreRow{}
	}
	if out.Next == nil {
		out.Next = []KickoffRow{}
	}
	return out
}

func (c *Cache) loadFallback() *Payload {
	if c.fallbackPath == "" {
		return nil
	}
	raw, err := os.ReadFile(c.fallbackPath)
	if err != nil {
		return nil
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	if p.Labels == (Labels{}) {
		p.Labels = defaultLabels()
	}
	if p.Prev == nil {
		p.Prev = []ScoreRow{}
	}
	if p.Next == nil {
		p.Next = []KickoffRow{}
	}
	return &p
}
