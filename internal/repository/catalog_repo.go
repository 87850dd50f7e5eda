package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ExhibitSync/internal/interfaces"
	"ExhibitSync/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository is the gorm-backed catalog store.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) interfaces.CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindActiveVenues returns active venues, optionally restricted to one tier
// (tier 0 means all tiers). Ordered by tier then name so runs are stable.
func (r *CatalogRepository) FindActiveVenues(ctx context.Context, tier int) ([]*model.Venue, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if tier > 0 {
		q = q.Where("tier = ?", tier)
	}

	var venues []*model.Venue
	if err := q.Order("tier, name").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("find active venues: %w", err)
	}
	return venues, nil
}

// FindVenue returns (nil, nil) when the venue does not exist.
func (r *CatalogRepository) FindVenue(ctx context.Context, id uint64) (*model.Venue, error) {
	var venue model.Venue
	err := r.db.WithContext(ctx).First(&venue, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find venue %d: %w", id, err)
	}
	return &venue, nil
}

func (r *CatalogRepository) TouchVenueCrawled(ctx context.Context, venueID uint64, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&model.Venue{}).
		Where("id = ?", venueID).
		Update("last_crawled_at", at).Error
	if err != nil {
		return fmt.Errorf("touch venue %d: %w", venueID, err)
	}
	return nil
}

// FindExhibition looks up the catalog row by the reconciliation match key.
// Returns (nil, nil) when no row exists.
func (r *CatalogRepository) FindExhibition(ctx context.Context, title string, venueID uint64, start time.Time) (*model.Exhibition, error) {
	var ex model.Exhibition
	err := r.db.WithContext(ctx).
		Where("title = ? AND venue_id = ? AND start_date = ?", title, venueID, start).
		First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find exhibition %q: %w", title, err)
	}
	return &ex, nil
}

func (r *CatalogRepository) InsertExhibition(ctx context.Context, ex *model.Exhibition) error {
	if err := r.db.WithContext(ctx).Create(ex).Error; err != nil {
		return fmt.Errorf("insert exhibition %q: %w", ex.Title, err)
	}
	return nil
}

func (r *CatalogRepository) UpdateExhibition(ctx context.Context, id uint64, fields map[string]interface{}) error {
	err := r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update exhibition %d: %w", id, err)
	}
	return nil
}

// UpdateStatusBulk reclassifies every row whose status no longer matches
// the calendar. cancelled and draft are administrative overrides and are
// never touched; rows already correct are excluded so the sweep does not
// churn updated_at.
func (r *CatalogRepository) UpdateStatusBulk(ctx context.Context, today time.Time) (int64, error) {
	day := today.Format("2006-01-02")
	sticky := []model.ExhibitionStatus{model.StatusCancelled, model.StatusDraft}

	var total int64

	res := r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Where("start_date > ? AND status <> ? AND status NOT IN ?", day, model.StatusUpcoming, sticky).
		Updates(map[string]interface{}{"status": model.StatusUpcoming, "updated_at": today})
	if res.Error != nil {
		return total, fmt.Errorf("sweep to upcoming: %w", res.Error)
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Where("start_date <= ? AND end_date >= ? AND status <> ? AND status NOT IN ?", day, day, model.StatusOngoing, sticky).
		Updates(map[string]interface{}{"status": model.StatusOngoing, "updated_at": today})
	if res.Error != nil {
		return total, fmt.Errorf("sweep to ongoing: %w", res.Error)
	}
	total += res.RowsAffected

	res = r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Where("end_date < ? AND status <> ? AND status NOT IN ?", day, model.StatusEnded, sticky).
		Updates(map[string]interface{}{"status": model.StatusEnded, "updated_at": today})
	if res.Error != nil {
		return total, fmt.Errorf("sweep to ended: %w", res.Error)
	}
	total += res.RowsAffected

	return total, nil
}

// DeleteUnverifiedOlderThan removes stale rows that moderation never
// verified. Verified rows are kept regardless of age.
func (r *CatalogRepository) DeleteUnverifiedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ? AND verification_status <> ?", cutoff, model.VerificationVerified).
		Delete(&model.Exhibition{})
	if res.Error != nil {
		return 0, fmt.Errorf("retention delete: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *CatalogRepository) CountExhibitions(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Exhibition{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count exhibitions: %w", err)
	}
	return count, nil
}

// CollectionStats snapshots the catalog for report artifacts.
func (r *CatalogRepository) CollectionStats(ctx context.Context) (*model.CatalogStats, error) {
	stats := &model.CatalogStats{}

	type statusCount struct {
		Status model.ExhibitionStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	for _, row := range rows {
		stats.TotalExhibitions += row.Count
		switch row.Status {
		case model.StatusUpcoming:
			stats.Upcoming = row.Count
		case model.StatusOngoing:
			stats.Ongoing = row.Count
		case model.StatusEnded:
			stats.Ended = row.Count
		}
	}

	err = r.db.WithContext(ctx).
		Model(&model.Exhibition{}).
		Distinct("venue_id").
		Count(&stats.UniqueVenues).Error
	if err != nil {
		return nil, fmt.Errorf("venue count: %w", err)
	}

	return stats, nil
}
