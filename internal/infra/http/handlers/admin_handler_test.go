package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/decomly/lead-broker/internal/entity"
	"github.com/decomly/lead-broker/internal/infra/http/handlers"
	"github.com/decomly/lead-broker/internal/usecase"
)

type MockLeadFinder struct {
	mock.Mock
	entity.LeadRepositoryInterface
}

func (m *MockLeadFinder) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if lead, ok := args.Get(0).(*entity.Lead); ok {
		return lead, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadFinder) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func adminRouter(leads *MockLeadFinder) http.Handler {
	logger := zap.NewNop()
	handler := handlers.NewAdminHandler(
		usecase.NewUpdateLeadStatusUseCase(leads),
		usecase.NewUpdateVendorStatusUseCase(nil),
		leads,
		nil,
		logger,
	)

	r := chi.NewRouter()
	r.Patch("/leads/{id}/status", handler.UpdateLeadStatus)
	return r
}

func TestAdminUpdateLeadStatus(t *testing.T) {
	t.Run("legal transition returns the updated lead", func(t *testing.T) {
		leads := new(MockLeadFinder)
		leads.On("FindByID", mock.Anything, "lead-1").Return(&entity.Lead{ID: "lead-1", Status: entity.LeadStatusNew}, nil)
		leads.On("UpdateStatus", mock.Anything, "lead-1", entity.LeadStatusVetted).Return(nil)

		req := httptest.NewRequest(http.MethodPatch, "/leads/lead-1/status", strings.NewReader(`{"status":"vetted"}`))
		w := httptest.NewRecorder()

		adminRouter(leads).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"vetted"`)
	})

	t.Run("illegal edge returns the transition envelope", func(t *testing.T) {
		leads := new(MockLeadFinder)
		leads.On("FindByID", mock.Anything, "lead-1").Return(&entity.Lead{ID: "lead-1", Status: entity.LeadStatusNew}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/leads/lead-1/status", strings.NewReader(`{"status":"won"}`))
		w := httptest.NewRecorder()

		adminRouter(leads).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"invalid_transition"`)
		assert.Contains(t, w.Body.String(), `"field":"status"`)
		leads.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing lead returns 404", func(t *testing.T) {
		leads := new(MockLeadFinder)
		leads.On("FindByID", mock.Anything, "nope").Return(nil, entity.ErrLeadNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/leads/nope/status", strings.NewReader(`{"status":"vetted"}`))
		w := httptest.NewRecorder()

		adminRouter(leads).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"not_found"`)
	})
}
