package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/service"
	"github.com/jainnhimanshuu/savorini/pkg/middleware"
	"github.com/jainnhimanshuu/savorini/pkg/response"
	"github.com/jainnhimanshuu/savorini/pkg/telemetry"
)

// DealHandler handles deal HTTP requests
type DealHandler struct {
	deals service.DealService
}

// NewDealHandler creates a new deal handler
func NewDealHandler(deals service.DealService) *DealHandler {
	return &DealHandler{deals: deals}
}

func dealID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "deal id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// CreateDeal handles POST /api/v1/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.create")
	defer span.End()

	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.deals.CreateDeal(ctx, &req)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	span.SetAttributes(attribute.String("deal.id", resp.ID))
	response.Created(c, resp)
}

// GetDeal handles GET /api/v1/deals/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.get")
	defer span.End()

	id, ok := dealID(c)
	if !ok {
		return
	}

	viewer := domain.RoleFromString(middleware.GetUserRole(c))
	resp, err := h.deals.GetDeal(ctx, id, viewer)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// UpdateDeal handles PUT /api/v1/deals/:id
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.update")
	defer span.End()

	id, ok := dealID(c)
	if !ok {
		return
	}

	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.deals.UpdateDeal(ctx, id, &req)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// RedeemDeal handles POST /api/v1/deals/:id/redeem
func (h *DealHandler) RedeemDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.redeem")
	defer span.End()

	id, ok := dealID(c)
	if !ok {
		return
	}

	resp, err := h.deals.RedeemDeal(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// FeatureDeal handles POST /api/v1/deals/:id/feature
func (h *DealHandler) FeatureDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.feature")
	defer span.End()

	id, ok := dealID(c)
	if !ok {
		return
	}

	resp, err := h.deals.FeatureDeal(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// UnfeatureDeal handles DELETE /api/v1/deals/:id/feature
func (h *DealHandler) UnfeatureDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.unfeature")
	defer span.End()

	id, ok := dealID(c)
	if !ok {
		return
	}

	resp, err := h.deals.UnfeatureDeal(ctx, id)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}

// VerifyDeal handles POST /api/v1/deals/:id/verify
func (h *DealHandler) VerifyDeal(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.deal.verify")
	defer span.End()

	id, ok := dealID(c)
	if !ok {
		return
	}

	verifierID, err := uuid.Parse(middleware.GetUserID(c))
	if err != nil {
		response.Unauthorized(c, "verification requires an authenticated moderator")
		return
	}

	resp, err := h.deals.VerifyDeal(ctx, id, verifierID)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}
