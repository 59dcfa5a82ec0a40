package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/pythh/hotmatch/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByAPIKeyHash(hash string) (*models.User, *models.UserSettings, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// ShareLinkRepository defines the interface for share-link database operations
type ShareLinkRepository interface {
	Create(link *models.ShareLink) error
	GetByToken(token string) (*models.ShareLink, error)
	GetByUserID(userID uint) ([]models.ShareLink, error)
	// GetCurrent returns the newest link for (user, shareType) that is
	// neither revoked nor expired at the given time, or nil when none exists.
	GetCurrent(userID uint, shareType string, now time.Time) (*models.ShareLink, error)
	Revoke(link *models.ShareLink) error
	ApplyViewCounts(counts map[uint]int64) error
	TotalViews() (int64, error)
	Count() (int64, error)
}

// PairingRepository defines the interface for pairing-feed database operations
type PairingRepository interface {
	Create(pairing *models.Pairing) error
	GetRecent(limit int) ([]models.Pairing, error)
	SearchByStartupName(query string, limit int) ([]models.Pairing, error)
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User      UserRepository
	ShareLink ShareLinkRepository
	Pairing   PairingRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		ShareLink: NewShareLinkRepository(db),
		Pairing:   NewPairingRepository(db),
	}
}
