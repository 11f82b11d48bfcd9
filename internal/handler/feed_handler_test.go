package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jainnhimanshuu/savorini/internal/clock"
	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/repository"
	"github.com/jainnhimanshuu/savorini/internal/service"
)

// MockDiscoveryService returns canned feed responses
type MockDiscoveryService struct {
	resp       *dto.FeedResponse
	err        error
	lastViewer domain.Role
}

func (m *MockDiscoveryService) Discover(ctx context.Context, req *dto.FeedRequest, viewer domain.Role) (*dto.FeedResponse, error) {
	m.lastViewer = viewer
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *MockDiscoveryService) Spotlight(ctx context.Context, req *dto.FeedRequest, viewer domain.Role, limit int) (*dto.FeedResponse, error) {
	m.lastViewer = viewer
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func setupFeedRouter(svc *MockDiscoveryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewFeedHandler(svc)
	router.GET("/api/v1/feed", h.GetFeed)
	router.GET("/api/v1/feed/spotlight", h.GetSpotlight)
	return router
}

func TestGetFeedSuccess(t *testing.T) {
	svc := &MockDiscoveryService{resp: &dto.FeedResponse{
		Items:      []dto.FeedItem{{Title: "Wing Night", PriceDisposition: "show"}},
		Pagination: dto.PaginationMeta{Page: 1, PerPage: 20, Total: 1, Pages: 1},
		When:       "now",
	}}
	router := setupFeedRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?lat=43.65&lng=-79.38", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    dto.FeedResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Wing Night", body.Data.Items[0].Title)
	assert.Equal(t, domain.RoleUser, svc.lastViewer, "anonymous viewers are consumers")
}

// wiredFeedRouter routes to a real discovery service so request
// validation runs end to end. The nil candidate source is never
// reached by requests that fail validation.
func wiredFeedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryRuleStore(domain.DefaultRules())
	compliance := service.NewComplianceService(store, domain.ProvinceON)
	svc := service.NewDiscoveryService(nil, compliance, nil, clock.NewSystem(), service.DiscoveryServiceConfig{})

	router := gin.New()
	router.GET("/api/v1/feed", NewFeedHandler(svc).GetFeed)
	return router
}

func TestGetFeedMissingCoordinates(t *testing.T) {
	router := wiredFeedRouter()

	for _, query := range []string{"", "lat=43.65", "lng=-79.38"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?"+query, nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, domain.CodeInvalidCoordinates, body.Error.Code)
	}
}

func TestGetFeedAcceptsZeroAndBoundaryCoordinates(t *testing.T) {
	svc := &MockDiscoveryService{resp: &dto.FeedResponse{}}
	router := setupFeedRouter(svc)

	queries := []string{
		"lat=0&lng=10",
		"lat=43.65&lng=0",
		"lat=0&lng=0",
		"lat=90&lng=180",
		"lat=-90&lng=-180",
	}
	for _, query := range queries {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?"+query, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "query %q", query)
	}
}

func TestGetFeedErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			"validation maps to 400",
			domain.NewValidationError(domain.CodeInvalidRadius, "radius out of range"),
			http.StatusBadRequest, domain.CodeInvalidRadius,
		},
		{
			"business rule maps to 422",
			domain.NewBusinessRuleError(domain.CodeHappyHourRestricted, "not allowed"),
			http.StatusUnprocessableEntity, domain.CodeHappyHourRestricted,
		},
		{
			"external service maps to 503",
			domain.NewExternalServiceError("CANDIDATE_SOURCE_UNAVAILABLE", "connection refused"),
			http.StatusServiceUnavailable, "CANDIDATE_SOURCE_UNAVAILABLE",
		},
		{
			"not found maps to 404",
			domain.ErrDealNotFound,
			http.StatusNotFound, "DEAL_NOT_FOUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupFeedRouter(&MockDiscoveryService{err: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?lat=43.65&lng=-79.38", nil)
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)

			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestGetSpotlightLimitValidation(t *testing.T) {
	router := setupFeedRouter(&MockDiscoveryService{resp: &dto.FeedResponse{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed/spotlight?lat=43.65&lng=-79.38&limit=500", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
