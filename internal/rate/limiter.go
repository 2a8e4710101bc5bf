package rate

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LimiterMap keeps one token bucket per client and forgets clients that have
// been idle longer than idle.
type LimiterMap struct {
	mu      sync.Mutex
	clients map[string]*client
	every   rate.Limit
	burst   int
	idle    time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewLimiterMap allows rpm requests per minute per client with the given burst.
// A background sweeper runs until Stop is called.
func NewLimiterMap(rpm, burst int, idle time.Duration) *LimiterMap {
	if rpm < 1 {
		rpm = 1
	}
	if burst < 1 {
		burst = 1
	}
	lm := &LimiterMap{
		clients: make(map[string]*client),
		every:   rate.Every(time.Minute / time.Duration(rpm)),
		burst:   burst,
		idle:    idle,
		done:    make(chan struct{}),
	}
	go lm.sweep()
	return lm
}

func (l *LimiterMap) sweep() {
	t := time.NewTicker(l.idle)
	defer t.Stop()
	for {
		select {
		case <-l.done:
			return
		case now := <-t.C:
			l.mu.Lock()
			for id, c := range l.clients {
				if now.Sub(c.lastSeen) > l.idle {
					delete(l.clients, id)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Stop ends the sweeper. Safe to call more than once.
func (l *LimiterMap) Stop() { l.once.Do(func() { close(l.done) }) }

// Allow reports whether a request from id fits in its bucket.
func (l *LimiterMap) Allow(id string) bool {
	l.mu.Lock()
	c, ok := l.clients[id]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[id] = c
	}
	c.lastSeen = time.Now()
	l.mu.Unlock()
	return c.limiter.Allow()
}

// Len returns the number of tracked clients.
func (l *LimiterMap) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// ClientID identifies the caller: first X-Forwarded-For hop, else remote host.
func ClientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
