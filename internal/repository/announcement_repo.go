package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/classroom-extract/internal/models"
)

// AnnouncementRepository persists course announcements.
type AnnouncementRepository interface {
	Save(ctx context.Context, announcement models.Announcement) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Save(ctx context.Context, announcement models.Announcement) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(models.AnnouncementMutableColumns),
	}).Create(&announcement).Error
	return translateError("announcements.save", err)
}
