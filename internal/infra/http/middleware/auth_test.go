package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/integration/identity"
)

type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) VerifyToken(ctx context.Context, token string) (*identity.Session, error) {
	args := m.Called(ctx, token)
	if session, ok := args.Get(0).(*identity.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockVendorFinder struct {
	mock.Mock
	entity.VendorRepositoryInterface
}

func (m *MockVendorFinder) FindApprovedByUserID(ctx context.Context, userID string) (*entity.Vendor, error) {
	args := m.Called(ctx, userID)
	if vendor, ok := args.Get(0).(*entity.Vendor); ok {
		return vendor, args.Error(1)
	}
	return nil, args.Error(1)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAdmin(t *testing.T) {
	session := &identity.Session{UserID: "user-1", Email: "ops@example.com"}

	t.Run("allow-listed email passes", func(t *testing.T) {
		id := new(MockIdentity)
		id.On("VerifyToken", mock.Anything, "tok").Return(session, nil)
		guard := NewGuard(id, nil, []string{"Ops@Example.com"}, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		guard.RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("empty allow-list fails closed", func(t *testing.T) {
		id := new(MockIdentity)
		id.On("VerifyToken", mock.Anything, "tok").Return(session, nil)
		guard := NewGuard(id, nil, nil, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		guard.RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("non-admin email is forbidden", func(t *testing.T) {
		id := new(MockIdentity)
		id.On("VerifyToken", mock.Anything, "tok").Return(session, nil)
		guard := NewGuard(id, nil, []string{"boss@example.com"}, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		guard.RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing bearer token is unauthorized", func(t *testing.T) {
		id := new(MockIdentity)
		guard := NewGuard(id, nil, []string{"ops@example.com"}, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		w := httptest.NewRecorder()

		guard.RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		id.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
	})

	t.Run("rejected token is unauthorized", func(t *testing.T) {
		id := new(MockIdentity)
		id.On("VerifyToken", mock.Anything, "bad").Return(nil, errors.New("expired"))
		guard := NewGuard(id, nil, []string{"ops@example.com"}, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req.Header.Set("Authorization", "Bearer bad")
		w := httptest.NewRecorder()

		guard.RequireAdmin(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireVendor(t *testing.T) {
	session := &identity.Session{UserID: "user-1", Email: "owner@acme.example"}

	t.Run("approved vendor lands on the context", func(t *testing.T) {
		id := new(MockIdentity)
		id.On("VerifyToken", mock.Anything, "tok").Return(session, nil)
		vendors := new(MockVendorFinder)
		vendors.On("FindApprovedByUserID", mock.Anything, "user-1").
			Return(&entity.Vendor{ID: "ven-1", Status: entity.VendorStatusApproved}, nil)
		guard := NewGuard(id, vendors, nil, zap.NewNop())

		var seen *entity.Vendor
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = VendorFrom(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/dashboard/leads", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		guard.RequireVendor(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotNil(t, seen)
		assert.Equal(t, "ven-1", seen.ID)
	})

	t.Run("unapproved account is forbidden", func(t *testing.T) {
		id := new(MockIdentity)
		id.On("VerifyToken", mock.Anything, "tok").Return(session, nil)
		vendors := new(MockVendorFinder)
		vendors.On("FindApprovedByUserID", mock.Anything, "user-1").Return(nil, entity.ErrVendorNotFound)
		guard := NewGuard(id, vendors, nil, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/dashboard/leads", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()

		guard.RequireVendor(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
