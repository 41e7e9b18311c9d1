package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Basith5/blog-page-api/internal/metrics"
	"github.com/Basith5/blog-page-api/internal/middleware"
	"github.com/Basith5/blog-page-api/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgPageCreated   = "Page created successfully"
	msgPageUpdated   = "Page updated successfully"
	msgPageDeleted   = "Page deleted successfully"
	msgPageNotFound  = "Page not found"
	msgInvalidPage   = "Invalid page payload"
	msgInternalError = "Something went wrong"
)

// AddPage 创建页面 POST /addPage
func (a *API) AddPage(c *gin.Context) {
	input, ok := a.bindPageInput(c, "create")
	if !ok {
		return
	}

	page, err := a.pages.Create(c.Request.Context(), input)
	if err != nil {
		a.handlePageError(c, "create", err)
		return
	}

	a.metrics.ObservePageOperation("create", metrics.OutcomeSuccess)
	c.JSON(http.StatusCreated, gin.H{"id": page.ID, "message": msgPageCreated})
}

// ReadPages 返回全部页面 GET /readPage
func (a *API) ReadPages(c *gin.Context) {
	pages, err := a.pages.List(c.Request.Context())
	if err != nil {
		a.handlePageError(c, "list", err)
		return
	}

	a.metrics.ObservePageOperation("list", metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, pages)
}

// ReadPage 返回单个页面 GET /readPage/:id
func (a *API) ReadPage(c *gin.Context) {
	id, ok := a.pageID(c, "read")
	if !ok {
		return
	}

	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		a.handlePageError(c, "read", err)
		return
	}

	a.metrics.ObservePageOperation("read", metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, page)
}

// UpdatePage 更新页面名称 PUT /updatePage/:id
func (a *API) UpdatePage(c *gin.Context) {
	id, ok := a.pageID(c, "update")
	if !ok {
		return
	}

	input, ok := a.bindPageInput(c, "update")
	if !ok {
		return
	}

	if err := a.pages.Update(c.Request.Context(), id, input); err != nil {
		a.handlePageError(c, "update", err)
		return
	}

	a.metrics.ObservePageOperation("update", metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, gin.H{"message": msgPageUpdated})
}

// DeletePage 删除页面 DELETE /deletePage/:id
func (a *API) DeletePage(c *gin.Context) {
	id, ok := a.pageID(c, "delete")
	if !ok {
		return
	}

	if err := a.pages.Delete(c.Request.Context(), id); err != nil {
		a.handlePageError(c, "delete", err)
		return
	}

	a.metrics.ObservePageOperation("delete", metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, gin.H{"message": msgPageDeleted})
}

// bindPageInput decodes the JSON body. A body that is not an object with a
// string page_name is a validation failure like a too-short name.
func (a *API) bindPageInput(c *gin.Context, operation string) (service.PageInput, bool) {
	var input service.PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		a.handlePageError(c, operation, fmt.Errorf("%w: %v", service.ErrInvalidPage, err))
		return service.PageInput{}, false
	}
	return input, true
}

// pageID parses :id. An id that is not an unsigned integer cannot match any
// row, so it is reported as not found.
func (a *API) pageID(c *gin.Context, operation string) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.handlePageError(c, operation, fmt.Errorf("%w: %v", service.ErrPageNotFound, err))
		return 0, false
	}
	return id, true
}

func (a *API) handlePageError(c *gin.Context, operation string, err error) {
	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	}

	switch {
	case errors.Is(err, service.ErrPageNotFound):
		a.logger.Info("page not found", append(fields, zap.String("id", c.Param("id")))...)
		a.metrics.ObservePageOperation(operation, metrics.OutcomeNotFound)
		respondError(c, http.StatusNotFound, msgPageNotFound)
	case errors.Is(err, service.ErrInvalidPage):
		a.logger.Warn("page payload rejected", fields...)
		a.metrics.ObservePageOperation(operation, metrics.OutcomeInvalid)
		respondError(c, a.validationStatus, msgInvalidPage)
	default:
		a.logger.Error("page operation failed", fields...)
		a.metrics.ObservePageOperation(operation, metrics.OutcomeError)
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, msgInternalError)
	}
}
