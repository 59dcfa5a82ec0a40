package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pythh/hotmatch/app/models"
)

// pairingRepository implements the PairingRepository interface
type pairingRepository struct {
	db *gorm.DB
}

// NewPairingRepository creates a new pairing repository instance
func NewPairingRepository(db *gorm.DB) PairingRepository {
	return &pairingRepository{db: db}
}

// Create stores a pairing row delivered by the matching engine
func (r *pairingRepository) Create(pairing *models.Pairing) error {
	return r.db.Create(pairing).Error
}

// GetRecent returns the newest pairing rows up to limit
func (r *pairingRepository) GetRecent(limit int) ([]models.Pairing, error) {
	var pairings []models.Pairing
	err := r.db.Order("created_at DESC").Limit(limit).Find(&pairings).Error
	return pairings, err
}

// likeEscaper neutralizes LIKE metacharacters so user input matches
// literally instead of acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByStartupName performs a case-insensitive prefix/substring search
func (r *pairingRepository) SearchByStartupName(query string, limit int) ([]models.Pairing, error) {
	var pairings []models.Pairing
	pattern := "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
	err := r.db.Where("startup_name LIKE ?", pattern).
		Order("confidence DESC").Limit(limit).Find(&pairings).Error
	return pairings, err
}

// Count returns the total number of pairing rows
func (r *pairingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Pairing{}).Count(&count).Error
	return count, err
}

// CountSince counts pairings created at or after the given time
func (r *pairingRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Pairing{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
