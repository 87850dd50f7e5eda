package repository

import (
	"context"
	"errors"
	"fmt"

	"ExhibitSync/internal/model"

	"gorm.io/gorm"
)

// ExhibitionFilter narrows the public listing query.
type ExhibitionFilter struct {
	Status       string // upcoming / ongoing / ended
	Category     string // contemporary_art / traditional_art / ...
	City         string
	Verification string // pending / verified / rejected
}

// ExhibitionRepository serves the read side of the catalog for the HTTP API.
type ExhibitionRepository interface {
	ListExhibitions(ctx context.Context, filter ExhibitionFilter, page, pageSize int) ([]*model.Exhibition, int64, error)
	GetExhibitionByUUID(ctx context.Context, uuid string) (*model.Exhibition, error)
	IncrementViewCount(ctx context.Context, id uint64) error
}

type exhibitionRepository struct {
	db *gorm.DB
}

func NewExhibitionRepository(db *gorm.DB) ExhibitionRepository {
	return &exhibitionRepository{db: db}
}

// ListExhibitions pages through the catalog, soonest start date first.
func (r *exhibitionRepository) ListExhibitions(ctx context.Context, filter ExhibitionFilter, page, pageSize int) ([]*model.Exhibition, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.Exhibition{})

	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.City != "" {
		db = db.Where("venue_city = ?", filter.City)
	}
	if filter.Verification != "" {
		db = db.Where("verification_status = ?", filter.Verification)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count exhibitions: %w", err)
	}

	var exhibitions []*model.Exhibition
	if err := db.
		Order("start_date ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&exhibitions).Error; err != nil {
		return nil, 0, fmt.Errorf("list exhibitions: %w", err)
	}

	return exhibitions, total, nil
}

func (r *exhibitionRepository) GetExhibitionByUUID(ctx context.Context, uuid string) (*model.Exhibition, error) {
	var ex model.Exhibition
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exhibition %s: %w", uuid, err)
	}
	return &ex, nil
}

func (r *exhibitionRepository) IncrementViewCount(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("increment view count %d: %w", id, err)
	}
	return nil
}
