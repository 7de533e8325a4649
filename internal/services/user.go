package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/games"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/logger"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/repos"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/store"
	"github.com/Vedu8767/mindspark-cognito-train-sub000/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	DeleteMe(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	kv       store.KV
	userRepo repos.UserRepo
	playRepo repos.PlayEventRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, kv store.KV, userRepo repos.UserRepo, playRepo repos.PlayEventRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		kv:       kv,
		userRepo: userRepo,
		playRepo: playRepo,
	}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	return users[0], nil
}

// DeleteMe removes the account, its play archive, and its persisted bandit
// blobs. The row deletes run in one transaction; blob cleanup follows and is
// best-effort.
func (us *userService) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	ids := []uuid.UUID{userID}
	err := us.db.Transaction(func(tx *gorm.DB) error {
		if us.playRepo != nil {
			if err := us.playRepo.FullDeleteByUserIDs(ctx, tx, ids); err != nil {
				return fmt.Errorf("delete play events: %w", err)
			}
		}
		if err := us.userRepo.FullDeleteByIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, game := range games.Names() {
		if err := us.kv.Delete(ctx, blobKey(game, userID)); err != nil {
			us.log.Warn("bandit blob delete failed", "game", game, "user_id", userID, "error", err)
		}
	}
	us.log.Info("account deleted", "user_id", userID)
	return nil
}
