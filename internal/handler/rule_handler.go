package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jainnhimanshuu/savorini/internal/dto"
	"github.com/jainnhimanshuu/savorini/internal/service"
	"github.com/jainnhimanshuu/savorini/pkg/response"
	"github.com/jainnhimanshuu/savorini/pkg/telemetry"
)

// RuleHandler handles jurisdiction rule HTTP requests
type RuleHandler struct {
	rules service.RuleService
}

// NewRuleHandler creates a new rule handler
func NewRuleHandler(rules service.RuleService) *RuleHandler {
	return &RuleHandler{rules: rules}
}

// ListRules handles GET /api/v1/rules
func (h *RuleHandler) ListRules(c *gin.Context) {
	_, span := telemetry.StartSpan(c.Request.Context(), "handler.rules.list")
	defer span.End()

	response.Success(c, h.rules.ListRules())
}

// ReplaceRules handles PUT /api/v1/rules
func (h *RuleHandler) ReplaceRules(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.rules.replace")
	defer span.End()

	var req dto.ReplaceRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.rules.ReplaceRules(ctx, &req)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	response.Success(c, resp)
}
