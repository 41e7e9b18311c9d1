package handler

import (
	"context"
	"net/http"

	"github.com/Basith5/blog-page-api/internal/db"
	"github.com/Basith5/blog-page-api/internal/metrics"
	"github.com/Basith5/blog-page-api/internal/service"
	"go.uber.org/zap"
)

// PageStore is the page persistence contract the handlers depend on.
// *service.PageService satisfies it.
type PageStore interface {
	Create(ctx context.Context, input service.PageInput) (*db.Page, error)
	List(ctx context.Context) ([]db.Page, error)
	Get(ctx context.Context, id uint) (*db.Page, error)
	Update(ctx context.Context, id uint, input service.PageInput) error
	Delete(ctx context.Context, id uint) error
	Ping(ctx context.Context) error
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	pages            PageStore
	logger           *zap.Logger
	metrics          *metrics.Metrics
	validationStatus int
}

// NewAPI constructs a handler set around a page store. validationStatus is
// the status used for rejected payloads; zero falls back to 400.
func NewAPI(pages PageStore, logger *zap.Logger, m *metrics.Metrics, validationStatus int) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validationStatus == 0 {
		validationStatus = http.StatusBadRequest
	}
	return &API{
		pages:            pages,
		logger:           logger,
		metrics:          m,
		validationStatus: validationStatus,
	}
}
