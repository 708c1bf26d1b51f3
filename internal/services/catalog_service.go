// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// BeatFilter holds the optional catalog query parameters. The price range
// matches a beat when any of its four tier prices falls inside the range.
type BeatFilter struct {
	Search   string
	Genre    string
	Key      string
	Mood     string
	BPMMin   *int
	BPMMax   *int
	PriceMin *float64
	PriceMax *float64
	SortBy   string // newest, popular, price_low, price_high
	Limit    int
	Offset   int
}

var tierPriceColumns = []string{"basic_price", "premium_price", "unlimited_price", "exclusive_price"}

func (s *CatalogService) ListBeats(filter BeatFilter) ([]models.Beat, int64, error) {
	query := s.db.Model(&models.Beat{}).Where("is_active = ?", true)

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(genre) LIKE ? OR ? = ANY(tags)",
			term, term, term, strings.ToLower(filter.Search),
		)
	}

	if filter.Genre != "" && filter.Genre != "all" {
		query = query.Where("LOWER(genre) = ?", strings.ToLower(filter.Genre))
	}
	if filter.Key != "" && filter.Key != "all" {
		query = query.Where("LOWER(key) = ?", strings.ToLower(filter.Key))
	}
	if filter.Mood != "" && filter.Mood != "all" {
		query = query.Where("LOWER(mood) = ?", strings.ToLower(filter.Mood))
	}

	if filter.BPMMin != nil {
		query = query.Where("bpm >= ?", *filter.BPMMin)
	}
	if filter.BPMMax != nil {
		query = query.Where("bpm <= ?", *filter.BPMMax)
	}

	if filter.PriceMin != nil || filter.PriceMax != nil {
		var conds []string
		var args []interface{}
		for _, col := range tierPriceColumns {
			switch {
			case filter.PriceMin != nil && filter.PriceMax != nil:
				conds = append(conds, fmt.Sprintf("(%s >= ? AND %s <= ?)", col, col))
				args = append(args, *filter.PriceMin, *filter.PriceMax)
			case filter.PriceMin != nil:
				conds = append(conds, fmt.Sprintf("%s >= ?", col))
				args = append(args, *filter.PriceMin)
			default:
				conds = append(conds, fmt.Sprintf("%s <= ?", col))
				args = append(args, *filter.PriceMax)
			}
		}
		query = query.Where("("+strings.Join(conds, " OR ")+")", args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count beats: %w", err)
	}

	switch filter.SortBy {
	case "popular":
		query = query.Order("plays DESC")
	case "price_low":
		query = query.Order("basic_price ASC")
	case "price_high":
		query = query.Order("basic_price DESC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var beats []models.Beat
	if err := query.Find(&beats).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch beats: %w", err)
	}

	return beats, total, nil
}

func (s *CatalogService) GetBeat(id uuid.UUID) (*models.Beat, error) {
	var beat models.Beat
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&beat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: beat %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &beat, nil
}

func (s *CatalogService) GetBeatBySlug(slug string) (*models.Beat, error) {
	var beat models.Beat
	if err := s.db.Where("slug = ? AND is_active = ?", slug, true).First(&beat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: beat %q", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &beat, nil
}

// IncrementPlayCount bumps the play counter with a single atomic add so
// concurrent playback starts never lose updates.
func (s *CatalogService) IncrementPlayCount(id uuid.UUID) (int64, error) {
	result := s.db.Model(&models.Beat{}).Where("id = ?", id).
		UpdateColumn("plays", gorm.Expr("plays + ?", 1))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update play count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: beat %s", ErrNotFound, id)
	}

	var plays int64
	s.db.Model(&models.Beat{}).Where("id = ?", id).Select("plays").Scan(&plays)
	return plays, nil
}

// FreeDownload hands out the single non-tiered asset of a free beat,
// optionally capturing the requester's email as a subscriber. The caller
// presigns the returned URL.
func (s *CatalogService) FreeDownload(id uuid.UUID, email string) (string, error) {
	var beat models.Beat
	if err := s.db.Where("id = ?", id).First(&beat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: beat %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if !beat.IsFree {
		return "", fmt.Errorf("%w: beat %s is not free", ErrNotFound, id)
	}

	if email != "" {
		sub := models.EmailSubscriber{
			Email:    email,
			Source:   "free_download",
			IsActive: true,
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_active": true}),
		}).Create(&sub).Error
		if err != nil {
			// Email capture is best effort; the download still proceeds.
			logrus.WithError(err).WithField("email", email).Warn("Failed to record free download subscriber")
		}
	}

	if err := s.db.Model(&models.Beat{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error; err != nil {
		return "", fmt.Errorf("failed to update download count: %w", err)
	}

	return beat.BasicFileURL, nil
}

type CreateBeatRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=255"`
	Slug        string   `json:"slug" validate:"required,min=1,max=255"`
	Description string   `json:"description"`
	Genre       string   `json:"genre" validate:"required"`
	BPM         int      `json:"bpm" validate:"min=0"`
	Key         string   `json:"key"`
	Mood        string   `json:"mood"`
	Tags        []string `json:"tags,omitempty"`

	BasicPrice     float64 `json:"basic_price" validate:"min=0"`
	PremiumPrice   float64 `json:"premium_price" validate:"min=0"`
	UnlimitedPrice float64 `json:"unlimited_price" validate:"min=0"`
	ExclusivePrice float64 `json:"exclusive_price" validate:"min=0"`

	CoverImageURL    string `json:"cover_image_url"`
	PreviewURL       string `json:"preview_url"`
	BasicFileURL     string `json:"basic_file_url" validate:"required"`
	PremiumFileURL   string `json:"premium_file_url"`
	UnlimitedFileURL string `json:"unlimited_file_url"`
	ExclusiveFileURL string `json:"exclusive_file_url"`

	IsFeatured bool `json:"is_featured"`
	IsFree     bool `json:"is_free"`
}

type UpdateBeatRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description,omitempty"`
	Genre       *string  `json:"genre,omitempty"`
	BPM         *int     `json:"bpm,omitempty" validate:"omitempty,min=0"`
	Key         *string  `json:"key,omitempty"`
	Mood        *string  `json:"mood,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	BasicPrice     *float64 `json:"basic_price,omitempty" validate:"omitempty,min=0"`
	PremiumPrice   *float64 `json:"premium_price,omitempty" validate:"omitempty,min=0"`
	UnlimitedPrice *float64 `json:"unlimited_price,omitempty" validate:"omitempty,min=0"`
	ExclusivePrice *float64 `json:"exclusive_price,omitempty" validate:"omitempty,min=0"`

	CoverImageURL    *string `json:"cover_image_url,omitempty"`
	PreviewURL       *string `json:"preview_url,omitempty"`
	BasicFileURL     *string `json:"basic_file_url,omitempty"`
	PremiumFileURL   *string `json:"premium_file_url,omitempty"`
	UnlimitedFileURL *string `json:"unlimited_file_url,omitempty"`
	ExclusiveFileURL *string `json:"exclusive_file_url,omitempty"`

	IsActive   *bool `json:"is_active,omitempty"`
	IsFeatured *bool `json:"is_featured,omitempty"`
	IsFree     *bool `json:"is_free,omitempty"`
}

func (s *CatalogService) CreateBeat(req *CreateBeatRequest) (*models.Beat, error) {
	// A tier priced 0 is only meaningful on free beats.
	if !req.IsFree && req.BasicPrice <= 0 {
		return nil, fmt.Errorf("%w: basic price must be positive unless the beat is free", ErrInvalidInput)
	}

	var existing models.Beat
	if err := s.db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: slug %q already exists", ErrInvalidInput, req.Slug)
	}

	beat := &models.Beat{
		Title:            req.Title,
		Slug:             req.Slug,
		Description:      req.Description,
		Genre:            req.Genre,
		BPM:              req.BPM,
		Key:              req.Key,
		Mood:             req.Mood,
		Tags:             pq.StringArray(req.Tags),
		BasicPrice:       req.BasicPrice,
		PremiumPrice:     req.PremiumPrice,
		UnlimitedPrice:   req.UnlimitedPrice,
		ExclusivePrice:   req.ExclusivePrice,
		CoverImageURL:    req.CoverImageURL,
		PreviewURL:       req.PreviewURL,
		BasicFileURL:     req.BasicFileURL,
		PremiumFileURL:   req.PremiumFileURL,
		UnlimitedFileURL: req.UnlimitedFileURL,
		ExclusiveFileURL: req.ExclusiveFileURL,
		IsActive:         true,
		IsFeatured:       req.IsFeatured,
		IsFree:           req.IsFree,
	}

	if err := s.db.Create(beat).Error; err != nil {
		return nil, fmt.Errorf("failed to create beat: %w", err)
	}

	return beat, nil
}

func (s *CatalogService) UpdateBeat(id uuid.UUID, req *UpdateBeatRequest) (*models.Beat, error) {
	var beat models.Beat
	if err := s.db.Where("id = ?", id).First(&beat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: beat %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.BPM != nil {
		updates["bpm"] = *req.BPM
	}
	if req.Key != nil {
		updates["key"] = *req.Key
	}
	if req.Mood != nil {
		updates["mood"] = *req.Mood
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.BasicPrice != nil {
		updates["basic_price"] = *req.BasicPrice
	}
	if req.PremiumPrice != nil {
		updates["premium_price"] = *req.PremiumPrice
	}
	if req.UnlimitedPrice != nil {
		updates["unlimited_price"] = *req.UnlimitedPrice
	}
	if req.ExclusivePrice != nil {
		updates["exclusive_price"] = *req.ExclusivePrice
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.PreviewURL != nil {
		updates["preview_url"] = *req.PreviewURL
	}
	if req.BasicFileURL != nil {
		updates["basic_file_url"] = *req.BasicFileURL
	}
	if req.PremiumFileURL != nil {
		updates["premium_file_url"] = *req.PremiumFileURL
	}
	if req.UnlimitedFileURL != nil {
		updates["unlimited_file_url"] = *req.UnlimitedFileURL
	}
	if req.ExclusiveFileURL != nil {
		updates["exclusive_file_url"] = *req.ExclusiveFileURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsFree != nil {
		updates["is_free"] = *req.IsFree
	}

	if len(updates) > 0 {
		if err := s.db.Model(&beat).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update beat: %w", err)
		}
	}

	s.db.Where("id = ?", id).First(&beat)
	return &beat, nil
}

// DeactivateBeat removes a beat from the storefront. Completed orders keep
// referencing it, so this never deletes the row.
func (s *CatalogService) DeactivateBeat(id uuid.UUID) error {
	result := s.db.Model(&models.Beat{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate beat: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: beat %s", ErrNotFound, id)
	}
	return nil
}
