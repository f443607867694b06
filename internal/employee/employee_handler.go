package employee

import (
	"go-ems/internal/role"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
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

	search := c.Query("search")
	if search == "" {
		search = c.Query("q")
	}

	params := ListParams{
		Search:      strings.TrimSpace(search),
		RoleID:      strings.TrimSpace(c.Query("role")),
		Unpaginated: c.Query("pagination") == "false",
		Page:        page,
		Limit:       limit,
	}
	if raw := c.Query("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("isActive"))
			return
		}
		params.IsActive = &active
	}
	if params.Unpaginated {
		params.Page, params.Limit = 0, 0
	}
	h.logger.Debug("http list employees",
		zap.String("search", params.Search),
		zap.String("role", params.RoleID),
		zap.Bool("unpaginated", params.Unpaginated),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	resp, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	if params.Unpaginated {
		meta = response.NewPaginationMeta(total, 1, len(resp))
	}
	response.Success(c, http.StatusOK, "Users fetched successfully", resp, &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	targetID := c.Param("id")
	if role.SeesOnlyOwnRecords(c.GetString("role")) && targetID != c.GetString("employee_id") {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched successfully", resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	h.logger.Debug("http delete employee", zap.String("employee_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User deleted successfully", gin.H{"deleted": true}, nil)
}
