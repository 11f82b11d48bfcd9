package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/service"
	"github.com/jainnhimanshuu/savorini/pkg/middleware"
	"github.com/jainnhimanshuu/savorini/pkg/response"
	"github.com/jainnhimanshuu/savorini/pkg/telemetry"
)

// FeedHandler handles discovery feed HTTP requests
type FeedHandler struct {
	discovery service.DiscoveryService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(discovery service.DiscoveryService) *FeedHandler {
	return &FeedHandler{discovery: discovery}
}

// GetFeed handles GET /api/v1/feed
func (h *FeedHandler) GetFeed(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.feed.get")
	defer span.End()

	var req dto.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "malformed query parameters")
		return
	}

	viewer := domain.RoleFromString(middleware.GetUserRole(c))
	span.SetAttributes(
		attribute.Float64("feed.radius_km", req.RadiusKm),
		attribute.String("feed.when", req.When),
		attribute.String("feed.viewer_role", viewer.String()),
	)

	resp, err := h.discovery.Discover(ctx, &req, viewer)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.SuccessWithMeta(c, resp, resp.Pagination)
}

// GetSpotlight handles GET /api/v1/feed/spotlight
func (h *FeedHandler) GetSpotlight(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.feed.spotlight")
	defer span.End()

	var req dto.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "malformed query parameters")
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			response.BadRequest(c, "limit must be an integer within [1, 50]")
			return
		}
		limit = parsed
	}

	viewer := domain.RoleFromString(middleware.GetUserRole(c))
	resp, err := h.discovery.Spotlight(ctx, &req, viewer, limit)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}
