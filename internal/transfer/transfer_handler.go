package transfer

import (
	"context"
	"net/http"
	"strconv"

	"globalven/internal/shared/apperror"
	"globalven/internal/shared/contextutil"
	"globalven/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("transfer.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("transfer.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("transfer request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// writeList replies 200 with the result set, empty or not. Only the
// unfiltered get-all answers 204 on an empty store.
func (h *Handler) writeList(c *gin.Context, trs []Transfer, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if trs == nil {
		trs = []Transfer{}
	}
	response.Success(c, http.StatusOK, trs, nil)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid transfer id", c.Param("id"))
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create transfer validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update transfer validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.patchStatus(c, "approver", h.service.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.patchStatus(c, "rejector", h.service.Reject)
}

func (h *Handler) Process(c *gin.Context) {
	h.patchStatus(c, "processor", h.service.Process)
}

func (h *Handler) patchStatus(
	c *gin.Context,
	actorParam string,
	call func(ctx context.Context, id int64, actor string) (Transfer, error),
) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	actor := c.Query(actorParam)
	if actor == "" {
		actor = contextutil.GetActor(ctx)
	}

	resp, err := call(ctx, id, actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if len(resp) == 0 {
		response.NoContent(c)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("employeeId"), 10, 64)
	if err != nil || employeeID < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid employee id", c.Param("employeeId"))
		return
	}

	trs, err := h.service.GetByEmployee(c.Request.Context(), employeeID)
	h.writeList(c, trs, err)
}

func (h *Handler) GetByType(c *gin.Context) {
	trs, err := h.service.GetByType(c.Request.Context(), c.Param("type"))
	h.writeList(c, trs, err)
}

func (h *Handler) GetByStatus(c *gin.Context) {
	trs, err := h.service.GetByStatus(c.Request.Context(), c.Param("status"))
	h.writeList(c, trs, err)
}

func (h *Handler) GetByDateRange(c *gin.Context) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	trs, err := h.service.GetByDateRange(c.Request.Context(), q.StartDate, q.EndDate)
	h.writeList(c, trs, err)
}

func (h *Handler) GetByAmountRange(c *gin.Context) {
	var q AmountRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	trs, err := h.service.GetByAmountRange(c.Request.Context(), q.MinAmount, q.MaxAmount)
	h.writeList(c, trs, err)
}

func (h *Handler) GetByCurrency(c *gin.Context) {
	trs, err := h.service.GetByCurrency(c.Request.Context(), c.Param("currency"))
	h.writeList(c, trs, err)
}

func (h *Handler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "keyword is required", nil)
		return
	}

	trs, err := h.service.Search(c.Request.Context(), keyword)
	h.writeList(c, trs, err)
}

func (h *Handler) SearchDescription(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "keyword is required", nil)
		return
	}

	trs, err := h.service.SearchByDescription(c.Request.Context(), keyword)
	h.writeList(c, trs, err)
}

func (h *Handler) SearchReference(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "keyword is required", nil)
		return
	}

	trs, err := h.service.SearchByReference(c.Request.Context(), keyword)
	h.writeList(c, trs, err)
}

func (h *Handler) GetByGlRefCode(c *gin.Context) {
	trs, err := h.service.GetByGlRefCode(c.Request.Context(), c.Param("code"))
	h.writeList(c, trs, err)
}

func (h *Handler) SearchGlRefCode(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "keyword is required", nil)
		return
	}

	trs, err := h.service.SearchGlRefCode(c.Request.Context(), keyword)
	h.writeList(c, trs, err)
}

func (h *Handler) GetPending(c *gin.Context) {
	trs, err := h.service.GetPending(c.Request.Context())
	h.writeList(c, trs, err)
}

func (h *Handler) Statistics(c *gin.Context) {
	resp, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TransactionTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, TransactionTypes(), nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) Purge(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Purge(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
