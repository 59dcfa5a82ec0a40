package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pythh/hotmatch/app/models"
)

// shareLinkRepository implements the ShareLinkRepository interface
type shareLinkRepository struct {
	db *gorm.DB
}

// NewShareLinkRepository creates a new share-link repository instance
func NewShareLinkRepository(db *gorm.DB) ShareLinkRepository {
	return &shareLinkRepository{db: db}
}

// Create persists a new share link; token and UUID are generated by the
// model's BeforeCreate hook.
func (r *shareLinkRepository) Create(link *models.ShareLink) error {
	return r.db.Create(link).Error
}

// GetByToken retrieves a share link by its public token, regardless of
// lifecycle state. Callers decide how revoked/expired links are handled.
func (r *shareLinkRepository) GetByToken(token string) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := r.db.Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// GetByUserID lists all of a user's links, newest first, including revoked
// and expired ones. The server keeps full history.
func (r *shareLinkRepository) GetByUserID(userID uint) ([]models.ShareLink, error) {
	var links []models.ShareLink
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&links).Error
	return links, err
}

// GetCurrent returns the newest live link for (user, shareType), or nil when
// every stored link is revoked or expired.
func (r *shareLinkRepository) GetCurrent(userID uint, shareType string, now time.Time) (*models.ShareLink, error) {
	var link models.ShareLink
	err := r.db.
		Where("user_id = ? AND share_type = ?", userID, shareType).
		Where("revoked_at IS NULL").
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Revoke stamps the link revoked via the model helper.
func (r *shareLinkRepository) Revoke(link *models.ShareLink) error {
	return link.Revoke(r.db)
}

// ApplyViewCounts adds batched view increments accumulated in the cache.
func (r *shareLinkRepository) ApplyViewCounts(counts map[uint]int64) error {
	for id, delta := range counts {
		if delta <= 0 {
			continue
		}
		err := r.db.Model(&models.ShareLink{}).
			Where("id = ?", id).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", delta)).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// TotalViews sums view counts across all links.
func (r *shareLinkRepository) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.ShareLink{}).
		Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}

// Count returns the total number of share links ever created.
func (r *shareLinkRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ShareLink{}).Count(&count).Error
	return count, err
}
