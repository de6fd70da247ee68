package itinerary

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

// MockItineraryService is a mock implementation of Service
type MockItineraryService struct {
	mock.Mock
}

func (m *MockItineraryService) BuildItinerary(ctx context.Context, req types.BuildItineraryRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Itinerary), args.Error(1)
}

func setupItineraryHandlerTest() (*Handler, *MockItineraryService) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockService := new(MockItineraryService)
	return NewHandler(mockService, logger), mockService
}

func TestItineraryHandler_PlanTrip(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockService := setupItineraryHandlerTest()
		plan := &types.Itinerary{TripTitle: "3-Day Adventure in Paris"}
		mockService.On("BuildItinerary", mock.Anything, mock.MatchedBy(func(req types.BuildItineraryRequest) bool {
			return req.City == "Paris" && req.Days == 3
		})).Return(plan, nil).Once()

		body := `{"destination_city": "Paris", "duration_days": 3, "pace": "relaxed", "budget_level": "Luxury"}`
		req := httptest.NewRequest(http.MethodPost, "/plan-trip", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.PlanTrip(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result types.Itinerary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "3-Day Adventure in Paris", result.TripTitle)
		mockService.AssertExpectations(t)
	})

	t.Run("missing fields fall back to defaults", func(t *testing.T) {
		handler, mockService := setupItineraryHandlerTest()
		mockService.On("BuildItinerary", mock.Anything, mock.MatchedBy(func(req types.BuildItineraryRequest) bool {
			return req.City == "Rome" && req.Days == 3 && req.Pace == "moderate" && req.Budget == "Moderate"
		})).Return(&types.Itinerary{}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/plan-trip", strings.NewReader(`{"destination_city": "Rome"}`))
		rec := httptest.NewRecorder()
		handler.PlanTrip(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("missing destination is rejected", func(t *testing.T) {
		handler, mockService := setupItineraryHandlerTest()

		req := httptest.NewRequest(http.MethodPost, "/plan-trip", strings.NewReader(`{"duration_days": 3}`))
		rec := httptest.NewRecorder()
		handler.PlanTrip(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "BuildItinerary")
	})

	t.Run("service failure maps to 500", func(t *testing.T) {
		handler, mockService := setupItineraryHandlerTest()
		mockService.On("BuildItinerary", mock.Anything, mock.Anything).
			Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodPost, "/plan-trip", strings.NewReader(`{"destination_city": "Rome"}`))
		rec := httptest.NewRecorder()
		handler.PlanTrip(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
