package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jainnhimanshuu/savorini/internal/domain"
	"github.com/jainnhimanshuu/savorini/pkg/logger"
	"github.com/jainnhimanshuu/savorini/pkg/response"
)

// respondError maps a domain error kind to its HTTP status so clients
// can branch on kind without string matching.
func respondError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Get().Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
		response.InternalError(c, err)
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindBusinessRule:
		status = http.StatusUnprocessableEntity
	case domain.KindExternalService:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError || de.Kind == domain.KindExternalService {
		logger.Get().Error("request failed", zap.Error(err),
			zap.String("code", de.Code), zap.String("path", c.FullPath()))
	}

	response.Error(c, status, de.Code, de.Message, de.Details)
}
