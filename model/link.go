package model

import "time"

// Link lifecycle status tags. The short code is immutable once created and
// links are never hard-deleted; retirement happens through Status/IsActive.
const (
	LinkStatusActive  = "active"
	LinkStatusPaused  = "paused"
	LinkStatusRetired = "retired"
)

// Link is a Spark code: an owned, short-code-addressable redirect record
// with optional platform-specific deep links.
type Link struct {
	ID              string     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         string     `gorm:"type:uuid;index;not null" json:"ownerID"`
	ShortCode       string     `gorm:"uniqueIndex;size:16;not null" json:"shortCode"`
	DestinationURL  *string    `gorm:"type:text" json:"destinationURL,omitempty"`
	DeepLinkIOS     *string    `gorm:"type:text" json:"deepLinkIOS,omitempty"`
	DeepLinkAndroid *string    `gorm:"type:text" json:"deepLinkAndroid,omitempty"`
	IsActive        bool       `gorm:"not null;default:true" json:"isActive"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	Status          string     `gorm:"size:16;not null;default:active" json:"status"`
	Note            string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (Link) TableName() string {
	return "links"
}

// Expired reports whether the link carries an expiry strictly in the past.
func (l Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
