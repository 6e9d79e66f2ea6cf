package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"cart-engine/internal/pkg/config"
	"cart-engine/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxSessionIDKey = "cart_session_id"

// SessionMiddleware guarantees every request carries a guest session id.
// A missing, invalid or expired cookie is not an error: a fresh session is
// minted on the spot, which is exactly the empty-cart startup state.
type SessionMiddleware struct {
	tokens *session.TokenService
	cfg    config.SessionConfig
}

func NewSessionMiddleware(tokens *session.TokenService, cfg config.SessionConfig) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, cfg: cfg}
}

func (m *SessionMiddleware) EnsureSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := m.resolve(c)
		c.Set(ctxSessionIDKey, sessionID)
		c.Next()
	}
}

func (m *SessionMiddleware) resolve(c *gin.Context) uuid.UUID {
	raw, err := c.Cookie(m.cfg.CookieName)
	if err == nil && raw != "" {
		if sid, parseErr := m.tokens.Parse(raw); parseErr == nil {
			return sid
		}
		slog.Debug("session cookie rejected, minting new session", "path", c.Request.URL.Path)
	}

	sid := uuid.New()
	m.setCookie(c, sid)
	return sid
}

func (m *SessionMiddleware) setCookie(c *gin.Context, sid uuid.UUID) {
	token, err := m.tokens.Issue(sid, time.Now())
	if err != nil {
		slog.Error("failed to issue session token", "error", err.Error())
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		m.cfg.CookieName,
		token,
		int(m.cfg.TTL.Seconds()),
		"/",
		m.cfg.CookieDomain,
		m.cfg.CookieSecure,
		true, // HttpOnly
	)
}

func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxSessionIDKey)
	if !exists {
		return uuid.Nil, false
	}
	sid, ok := v.(uuid.UUID)
	return sid, ok
}
