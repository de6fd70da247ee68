package planner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-voice-trip-planner/internal/types"
)

// MockPlannerService is a mock implementation of Service
type MockPlannerService struct {
	mock.Mock
}

func (m *MockPlannerService) Merge(ctx context.Context, prev *types.TripConstraints, text string, history []types.ConversationTurn) (*types.TripConstraints, error) {
	args := m.Called(ctx, prev, text, history)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripConstraints), args.Error(1)
}

func setupPlannerHandlerTest() (*Handler, *MockPlannerService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockService := new(MockPlannerService)
	return NewHandler(mockService, logger), mockService
}

func TestPlannerHandler_AnalyzeIntent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockService := setupPlannerHandlerTest()
		merged := types.DefaultTripConstraints()
		merged.DestinationCity = "Paris"
		mockService.On("Merge", mock.Anything, mock.Anything, "I want to go to Paris", mock.Anything).
			Return(merged, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/analyze-intent", strings.NewReader(`{"text": "I want to go to Paris"}`))
		rec := httptest.NewRecorder()
		handler.AnalyzeIntent(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result types.TripConstraints
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "Paris", result.DestinationCity)
		mockService.AssertExpectations(t)
	})

	t.Run("existing constraints and history are forwarded", func(t *testing.T) {
		handler, mockService := setupPlannerHandlerTest()
		mockService.On("Merge", mock.Anything,
			mock.MatchedBy(func(prev *types.TripConstraints) bool {
				return prev != nil && prev.DestinationCity == "Tokyo"
			}),
			"make it 5 days",
			mock.MatchedBy(func(history []types.ConversationTurn) bool {
				return len(history) == 1 && history[0].Role == "user"
			}),
		).Return(types.DefaultTripConstraints(), nil).Once()

		body := `{"text": "make it 5 days", "existing_constraints": {"destination_city": "Tokyo"}, "history": [{"role": "user", "content": "Tokyo please"}]}`
		req := httptest.NewRequest(http.MethodPost, "/analyze-intent", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.AnalyzeIntent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		handler, mockService := setupPlannerHandlerTest()

		req := httptest.NewRequest(http.MethodPost, "/analyze-intent", strings.NewReader(`{"text": "   "}`))
		rec := httptest.NewRecorder()
		handler.AnalyzeIntent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Merge")
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		handler, _ := setupPlannerHandlerTest()

		req := httptest.NewRequest(http.MethodPost, "/analyze-intent", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		handler.AnalyzeIntent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service failure maps to 500", func(t *testing.T) {
		handler, mockService := setupPlannerHandlerTest()
		mockService.On("Merge", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodPost, "/analyze-intent", strings.NewReader(`{"text": "hello"}`))
		rec := httptest.NewRecorder()
		handler.AnalyzeIntent(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
