package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/types"
)

type PlayEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PlayEvent) ([]*types.PlayEvent, error)
	GetRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, game string, limit int) ([]*types.PlayEvent, error)
	CountByUserAndGame(ctx context.Context, tx *gorm.DB, userID uuid.UUID, game string) (int64, error)
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type playEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlayEventRepo(db *gorm.DB, baseLog *logger.Logger) PlayEventRepo {
	return &playEventRepo{db: db, log: baseLog.With("repo", "PlayEventRepo")}
}

func (r *playEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PlayEvent) ([]*types.PlayEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PlayEvent{}, nil
	}
	now := time.Now().UTC()
	for _, row := range rows {
		if row == nil {
			continue
		}
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		if row.CreatedAt.IsZero() {
			row.CreatedAt = now
		}
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *playEventRepo) GetRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, game string, limit int) ([]*types.PlayEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || game == "" {
		return []*types.PlayEvent{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	var out []*types.PlayEvent
	if err := t.WithContext(ctx).
		Where("user_id = ? AND game = ?", userID, game).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *playEventRepo) CountByUserAndGame(ctx context.Context, tx *gorm.DB, userID uuid.UUID, game string) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(ctx).Model(&types.PlayEvent{}).
		Where("user_id = ? AND game = ?", userID, game).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *playEventRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Unscoped().
		Where("user_id IN ?", userIDs).
		Delete(&types.PlayEvent{}).Error
}
