// internal/models/beat.go
package models

import (
	"github.com/lib/pq"
)

// Beat is a catalog entry. Beats are never hard-deleted: completed orders
// keep referencing them, so removal from the storefront flips IsActive off.
type Beat struct {
	BaseModel
	Title       string         `json:"title" gorm:"size:255;not null"`
	Slug        string         `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Genre       string         `json:"genre" gorm:"size:100;index"`
	BPM         int            `json:"bpm" gorm:"default:0"` // 0 means not applicable
	Key         string         `json:"key" gorm:"size:50"`
	Mood        string         `json:"mood" gorm:"size:50"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`

	BasicPrice     float64 `json:"basic_price" gorm:"type:decimal(10,2);not null;default:0"`
	PremiumPrice   float64 `json:"premium_price" gorm:"type:decimal(10,2);not null;default:0"`
	UnlimitedPrice float64 `json:"unlimited_price" gorm:"type:decimal(10,2);not null;default:0"`
	ExclusivePrice float64 `json:"exclusive_price" gorm:"type:decimal(10,2);not null;default:0"`

	CoverImageURL    string `json:"cover_image_url" gorm:"size:500"`
	PreviewURL       string `json:"preview_url" gorm:"size:500"`
	BasicFileURL     string `json:"-" gorm:"size:500"`
	PremiumFileURL   string `json:"-" gorm:"size:500"`
	UnlimitedFileURL string `json:"-" gorm:"size:500"`
	ExclusiveFileURL string `json:"-" gorm:"size:500"`

	IsActive   bool `json:"is_active" gorm:"default:true;index"`
	IsFeatured bool `json:"is_featured" gorm:"default:false"`
	IsFree     bool `json:"is_free" gorm:"default:false"`

	Plays     int64 `json:"plays" gorm:"default:0"`
	Downloads int64 `json:"downloads" gorm:"default:0"`
}

// PriceForLicense returns the price of the given tier. The second return
// value is false for unknown tiers.
func (b *Beat) PriceForLicense(lt LicenseType) (float64, bool) {
	switch lt {
	case LicenseTypeBasic:
		return b.BasicPrice, true
	case LicenseTypePremium:
		return b.PremiumPrice, true
	case LicenseTypeUnlimited:
		return b.UnlimitedPrice, true
	case LicenseTypeExclusive:
		return b.ExclusivePrice, true
	}
	return 0, false
}

// FileURLForLicense returns the asset stored for exactly the given tier,
// which may be empty when an admin never uploaded one.
func (b *Beat) FileURLForLicense(lt LicenseType) string {
	switch lt {
	case LicenseTypeBasic:
		return b.BasicFileURL
	case LicenseTypePremium:
		return b.PremiumFileURL
	case LicenseTypeUnlimited:
		return b.UnlimitedFileURL
	case LicenseTypeExclusive:
		return b.ExclusiveFileURL
	}
	return ""
}
