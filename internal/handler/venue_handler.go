package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/service"
	"github.com/jainnhimanshuu/savorini/pkg/middleware"
	"github.com/jainnhimanshuu/savorini/pkg/response"
	"github.com/jainnhimanshuu/savorini/pkg/telemetry"
)

// VenueHandler handles venue HTTP requests
type VenueHandler struct {
	venues service.VenueService
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venues service.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

func venueID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "venue id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateVenue handles POST /api/v1/venues
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.create")
	defer span.End()

	vendorID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		response.Unauthorized(c, "venue creation requires an authenticated vendor")
		return
	}

	var req dto.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.venues.CreateVenue(ctx, vendorID, &req)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Created(c, resp)
}

// GetVenue handles GET /api/v1/venues/:id
func (h *VenueHandler) GetVenue(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.get")
	defer span.End()

	id, ok := venueID(c)
	if !ok {
		return
	}

	resp, err := h.venues.GetVenue(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// NearbyVenues handles GET /api/v1/venues/nearby
func (h *VenueHandler) NearbyVenues(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.nearby")
	defer span.End()

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "lat is required and must be a number")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		response.BadRequest(c, "lng is required and must be a number")
		return
	}

	var radiusKm float64
	if raw := c.Query("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "radius_km must be a number")
			return
		}
	}

	resp, err := h.venues.NearbyVenues(ctx, lat, lng, radiusKm)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// ActivateVenue handles POST /api/v1/venues/:id/activate
func (h *VenueHandler) ActivateVenue(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.activate")
	defer span.End()

	id, ok := venueID(c)
	if !ok {
		return
	}

	resp, err := h.venues.ActivateVenue(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// SuspendVenue handles POST /api/v1/venues/:id/suspend
func (h *VenueHandler) SuspendVenue(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.venue.suspend")
	defer span.End()

	id, ok := venueID(c)
	if !ok {
		return
	}

	resp, err := h.venues.SuspendVenue(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}
