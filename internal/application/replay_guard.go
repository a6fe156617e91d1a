package application

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bnema/agentgate/internal/domain"
	"github.com/bnema/agentgate/internal/ports"
)

const DefaultReplayWindow = 300 * time.Second

var (
	ErrReplayMissingNonce       = fmt.Errorf("%w: missing nonce", domain.ErrReplayRejected)
	ErrReplayMalformedTimestamp = fmt.Errorf("%w: malformed timestamp", domain.ErrReplayRejected)
	ErrReplayStaleTimestamp     = fmt.Errorf("%w: timestamp outside freshness window", domain.ErrReplayRejected)
	ErrReplayNonceReused        = fmt.Errorf("%w: nonce already used", domain.ErrReplayRejected)
)

// ReplayClaim is the freshness proof a caller attaches to a request:
// Unix seconds plus a single-use nonce.
type ReplayClaim struct {
	Timestamp string
	Nonce     string
}

func (c ReplayClaim) Empty() bool {
	return strings.TrimSpace(c.Timestamp) == "" && strings.TrimSpace(c.Nonce) == ""
}

// ReplayGuard admits a (timestamp, nonce) pair at most once. A nonce is
// remembered until no request carrying it could pass the freshness check
// again, then evicted, so memory stays proportional to traffic within one
// window.
type ReplayGuard struct {
	clock  ports.Clock
	window time.Duration

	mu        sync.Mutex
	seen      map[string]time.Time
	nextSweep time.Time
}

func NewReplayGuard(clock ports.Clock, window time.Duration) *ReplayGuard {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if window <= 0 {
		window = DefaultReplayWindow
	}

	return &ReplayGuard{
		clock:  clock,
		window: window.Truncate(time.Second),
		seen:   make(map[string]time.Time),
	}
}

func (g *ReplayGuard) Admit(timestamp, nonce string) bool {
	return g.Check(timestamp, nonce) == nil
}

// Check returns nil when the claim is admitted, or an error wrapping
// domain.ErrReplayRejected describing why it was not.
func (g *ReplayGuard) Check(timestamp, nonce string) error {
	nonce = strings.TrimSpace(nonce)
	if nonce == "" {
		return ErrReplayMissingNonce
	}

	claimed, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64)
	if err != nil {
		return ErrReplayMalformedTimestamp
	}

	now := g.clock.Now()
	nowSec := now.Unix()
	windowSec := int64(g.window / time.Second)
	if claimed < nowSec-windowSec || claimed > nowSec+windowSec {
		return ErrReplayStaleTimestamp
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !now.Before(g.nextSweep) {
		g.sweepLocked(now)
		g.nextSweep = now.Add(g.window)
	}

	if expiresAt, ok := g.seen[nonce]; ok && now.Before(expiresAt) {
		return ErrReplayNonceReused
	}

	g.seen[nonce] = time.Unix(max(claimed, nowSec)+windowSec+1, 0)
	return nil
}

// Sweep drops every nonce that can no longer be replayed and returns how
// many were removed.
func (g *ReplayGuard) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sweepLocked(g.clock.Now())
}

func (g *ReplayGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.seen)
}

func (g *ReplayGuard) Window() time.Duration {
	return g.window
}

func (g *ReplayGuard) sweepLocked(now time.Time) int {
	removed := 0
	for nonce, expiresAt := range g.seen {
		if !now.Before(expiresAt) {
			delete(g.seen, nonce)
			removed++
		}
	}

	return removed
}
