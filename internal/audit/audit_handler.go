package audit

import (
	"net/http"
	"strconv"

	"globalven/internal/shared/apperror"
	"globalven/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetByTransfer returns the audit trail for a single transfer, oldest first.
func (h *Handler) GetByTransfer(c *gin.Context) {
	transferID, err := strconv.ParseInt(c.Param("transferId"), 10, 64)
	if err != nil || transferID < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid transfer id", c.Param("transferId"))
		return
	}

	entries, err := h.service.GetByTransfer(c.Request.Context(), transferID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if entries == nil {
		entries = []TransferAuditEntry{}
	}
	response.Success(c, http.StatusOK, entries, nil)
}
