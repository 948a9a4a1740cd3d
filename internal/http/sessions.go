package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"lenta/internal/cache"
	"lenta/internal/feed"
	"lenta/internal/source"
)

const sessionCookie = "feed_session"

// sessionRegistry maps cookie IDs to view sessions. Sessions are held in
// an LRU with TTL, so an abandoned browser tab eventually drops its state
// and a returning one simply remounts with a fresh fetch.
type sessionRegistry struct {
	sessions *cache.LRUCache[*feed.Session]
	loc      *time.Location
}

func newSessionRegistry(maxSessions int, ttl time.Duration, loc *time.Location) *sessionRegistry {
	return &sessionRegistry{
		sessions: cache.NewLRUCache[*feed.Session](maxSessions, ttl),
		loc:      loc,
	}
}

// resolve returns the session for the request's cookie, mounting a new one
// when the cookie is absent, unknown, or expired. A freshly mounted
// session has already performed its fetch by the time resolve returns.
func (reg *sessionRegistry) resolve(ctx context.Context, w http.ResponseWriter, r *http.Request, src source.TransactionLister) *feed.Session {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if sess, ok := reg.sessions.Get(c.Value); ok {
			return sess
		}
	}

	id := newSessionID()
	sess := feed.NewSession(feed.WithLocation(reg.loc))
	// Load errors leave the session failed; the handlers render that state.
	_ = sess.Load(ctx, src)
	reg.sessions.Set(id, sess)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

// drop removes the request's session so the next request remounts.
func (reg *sessionRegistry) drop(r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		reg.sessions.Delete(c.Value)
	}
}

func newSessionID() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("sess_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
