package payrollreport

import (
	"net/http"
	"strconv"
	"strings"

	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payrollreport.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollreport.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("salary request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func viewerFrom(c *gin.Context) Viewer {
	return Viewer{
		EmployeeID: c.GetString("employee_id"),
		Role:       c.GetString("role"),
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = defaultPage
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	params := ListParams{
		Search: strings.TrimSpace(c.Query("search")),
		Month:  strings.TrimSpace(c.Query("month")),
		Sort:   strings.TrimSpace(c.Query("sort")),
		Desc:   !strings.EqualFold(c.Query("order"), "asc"),
		Page:   page,
		Limit:  limit,
	}

	resp, total, err := h.service.List(c.Request.Context(), viewerFrom(c), params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, "Salary list fetched successfully", resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), viewerFrom(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Salary fetched successfully", resp, nil)
}

func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	resp, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	message := "PDF file has been generated successfully"
	if resp.Format == FormatXLSX {
		message = "XLSX file has been generated successfully"
	}
	response.Success(c, http.StatusCreated, message, resp, nil)
}
