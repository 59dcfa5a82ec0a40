package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pythh/hotmatch/internal/pkg/sharetoken"
)

// Link visibility values. Unlisted links resolve for anyone holding the URL;
// restricted links additionally require the viewer to be signed in.
const (
	VisibilityUnlisted   = "unlisted"
	VisibilityRestricted = "restricted"
)

// ShareLink is a revocable, optionally-expiring public access token over a
// frozen content snapshot. Links are never hard-deleted: revocation and
// expiry are soft state carried by timestamps, so the server keeps full
// history while clients surface only the newest live link per share type.
type ShareLink struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UUID       string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	UserID     uint           `gorm:"index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Token      string         `gorm:"type:varchar(64) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"token"`
	ShareType  string         `gorm:"type:varchar(32);index;not null" json:"share_type"`
	Payload    JSON           `gorm:"type:json" json:"payload"`
	Visibility string         `gorm:"type:varchar(32);default:'unlisted'" json:"visibility"`
	CanComment bool           `gorm:"default:false" json:"can_comment"`
	ViewCount  int            `gorm:"default:0" json:"view_count"`
	ExpiresAt  *time.Time     `gorm:"type:datetime" json:"expires_at"`
	RevokedAt  *time.Time     `gorm:"type:datetime" json:"revoked_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate fills in the UUID and the opaque public token.
func (s *ShareLink) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	if s.Token == "" {
		token, err := sharetoken.Generate(sharetoken.DefaultLength)
		if err != nil {
			return err
		}
		s.Token = token
	}
	if s.Visibility == "" {
		s.Visibility = VisibilityUnlisted
	}
	return nil
}

// IsRevoked reports whether the link was explicitly revoked.
func (s *ShareLink) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsExpired reports whether the link has passively expired at the given time.
func (s *ShareLink) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// IsActive reports whether the link still resolves: neither revoked nor
// expired. Revoked and expired links behave identically to absent ones.
func (s *ShareLink) IsActive(now time.Time) bool {
	return !s.IsRevoked() && !s.IsExpired(now)
}

// Revoke stamps the link as revoked. Revoking an already-revoked link keeps
// the original timestamp so the operation stays idempotent.
func (s *ShareLink) Revoke(db *gorm.DB) error {
	if s.IsRevoked() {
		return nil
	}
	now := time.Now()
	s.RevokedAt = &now
	return db.Model(s).Update("revoked_at", now).Error
}

// PublicURL builds the fully-qualified share URL for the given origin.
func (s *ShareLink) PublicURL(origin string) string {
	return origin + "/s/" + s.Token
}

// DecodePayload parses the stored snapshot back into its tagged form.
func (s *ShareLink) DecodePayload() (*SharePayload, error) {
	p := &SharePayload{}
	if err := p.UnmarshalStored(s.Payload); err != nil {
		return nil, err
	}
	return p, nil
}
