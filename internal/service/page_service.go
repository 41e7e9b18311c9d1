package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Basith5/blog-page-api/internal/db"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound = errors.New("page not found")
	ErrInvalidPage  = errors.New("invalid page payload")
	ErrStorage      = errors.New("page storage failure")
)

// StorageError wraps a driver or connectivity failure for a single page operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets callers match any StorageError against ErrStorage.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// PageInput is the payload accepted by Create and Update.
type PageInput struct {
	PageName string `json:"page_name" validate:"required,min=3"`
}

// PageService runs page CRUD against an injected connection pool. Every
// method issues exactly one statement and keeps no state between calls.
type PageService struct {
	db       *gorm.DB
	validate *validator.Validate
	now      func() time.Time
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{
		db:       gdb,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// Create validates input and inserts a new page stamped with the current time.
func (s *PageService) Create(ctx context.Context, input PageInput) (*db.Page, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	page := db.Page{
		PageName:  input.PageName,
		CreatedOn: s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&page).Error; err != nil {
		return nil, &StorageError{Op: "create page", Err: err}
	}
	return &page, nil
}

// List returns every page in storage order.
func (s *PageService) List(ctx context.Context) ([]db.Page, error) {
	pages := make([]db.Page, 0)
	if err := s.db.WithContext(ctx).Find(&pages).Error; err != nil {
		return nil, &StorageError{Op: "list pages", Err: err}
	}
	return pages, nil
}

// Get fetches a single page by id.
func (s *PageService) Get(ctx context.Context, id uint) (*db.Page, error) {
	var page db.Page
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, &StorageError{Op: "get page", Err: err}
	}
	return &page, nil
}

// Update rewrites page_name and stamps updated_on.
func (s *PageService) Update(ctx context.Context, id uint, input PageInput) error {
	if err := s.validateInput(input); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&db.Page{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"page_name":  input.PageName,
			"updated_on": s.now(),
		})
	if result.Error != nil {
		return &StorageError{Op: "update page", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

// Delete removes a page permanently.
func (s *PageService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Page{})
	if result.Error != nil {
		return &StorageError{Op: "delete page", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrPageNotFound
	}
	return nil
}

// Ping checks that the pool can still reach storage.
func (s *PageService) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

func (s *PageService) validateInput(input PageInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidPage, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, "page_name is required")
		case "min":
			problems = append(problems, fmt.Sprintf("page_name must be at least %s characters", fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("page_name failed %s", fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidPage, strings.Join(problems, "; "))
}
