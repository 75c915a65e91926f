package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/integration/identity"
)

type contextKey string

const (
	sessionKey contextKey = "session"
	vendorKey  contextKey = "vendor"
)

type tokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*identity.Session, error)
}

// Guard authenticates requests against the managed auth backend and
// enforces the admin / approved-vendor roles.
type Guard struct {
	Identity    tokenVerifier
	Vendors     entity.VendorRepositoryInterface
	AdminEmails []string
	Logger      *zap.Logger
}

func NewGuard(identityClient tokenVerifier, vendors entity.VendorRepositoryInterface, adminEmails []string, logger *zap.Logger) *Guard {
	return &Guard{
		Identity:    identityClient,
		Vendors:     vendors,
		AdminEmails: adminEmails,
		Logger:      logger,
	}
}

func (g *Guard) authenticate(r *http.Request) (*identity.Session, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, false
	}

	session, err := g.Identity.VerifyToken(r.Context(), token)
	if err != nil {
		return nil, false
	}
	return session, true
}

// RequireSession only resolves the caller; no role check.
func (g *Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := g.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

// RequireAdmin fails closed: with no allow-list configured, nobody is
// an admin.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := g.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		if len(g.AdminEmails) == 0 {
			g.Logger.Warn("admin route hit with no ADMIN_EMAILS configured, denying",
				zap.String("email", session.Email))
			writeError(w, http.StatusForbidden, "forbidden", "admin access is not configured")
			return
		}

		if !g.isAdmin(session.Email) {
			writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

func (g *Guard) RequireVendor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := g.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		vendor, err := g.Vendors.FindApprovedByUserID(r.Context(), session.UserID)
		if err != nil {
			writeError(w, http.StatusForbidden, "forbidden", "approved provider account required")
			return
		}

		ctx := withSession(r.Context(), session)
		ctx = context.WithValue(ctx, vendorKey, vendor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Guard) isAdmin(email string) bool {
	for _, allowed := range g.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

func withSession(ctx context.Context, session *identity.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func SessionFrom(ctx context.Context) (*identity.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*identity.Session)
	return session, ok
}

func VendorFrom(ctx context.Context) (*entity.Vendor, bool) {
	vendor, ok := ctx.Value(vendorKey).(*entity.Vendor)
	return vendor, ok
}
