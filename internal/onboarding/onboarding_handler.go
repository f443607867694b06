package onboarding

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	onboardingerrors "go-ems/internal/onboarding/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	imageField     = "image"
	maxImageBytes  = 5 << 20
	maxFormMemory  = 8 << 20
	multipartMedia = "multipart/form-data"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("onboarding.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("onboarding.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("onboarding request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	req, image, err := h.bind(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Step(c.Request.Context(), req, image)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Step == 1 {
		status = http.StatusCreated
	}
	response.Success(c, status, fmt.Sprintf("Step %d completed", resp.Step), resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	req, image, err := h.bind(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), req, image)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Step %d update successful", resp.Step), resp, nil)
}

// bind decodes either a multipart form (with optional image) or a JSON body.
func (h *Handler) bind(c *gin.Context) (StepRequest, *File, error) {
	var req StepRequest

	if !strings.HasPrefix(c.ContentType(), multipartMedia) {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("http onboarding decode failed", zap.Error(err))
			return req, nil, onboardingerrors.ErrInvalidRequest.WithCause(err)
		}
		return req, nil, nil
	}

	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil {
		return req, nil, onboardingerrors.ErrInvalidRequest.WithCause(err)
	}
	form := c.Request.MultipartForm
	if err := decodeForm(form.Value, &req); err != nil {
		h.logger.Warn("http onboarding form decode failed", zap.Error(err))
		return req, nil, onboardingerrors.ErrInvalidRequest.WithCause(err)
	}

	headers := form.File[imageField]
	if len(headers) == 0 {
		return req, nil, nil
	}
	header := headers[0]
	if header.Size > maxImageBytes {
		return req, nil, apperror.Validation("Image must be at most 5MB")
	}

	f, err := header.Open()
	if err != nil {
		return req, nil, onboardingerrors.ErrInvalidRequest.WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return req, nil, onboardingerrors.ErrInvalidRequest.WithCause(err)
	}
	return req, &File{Name: header.Filename, Data: data}, nil
}
