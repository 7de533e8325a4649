package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlayEvent is the append-only archive row for one completed level. It is
// audit/display data, separate from the live bandit blob, and survives a
// bandit reset.
type PlayEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_play_event_user_game" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Game      string         `gorm:"column:game;not null;index:idx_play_event_user_game" json:"game"`
	Level     int            `gorm:"column:level;not null" json:"level"`
	ActionKey string         `gorm:"column:action_key;not null" json:"action_key"`
	Reward    float64        `gorm:"column:reward;not null" json:"reward"`
	Accuracy  float64        `gorm:"column:accuracy;not null" json:"accuracy"`
	Completed bool           `gorm:"column:completed;not null" json:"completed"`
	Metrics   datatypes.JSON `gorm:"column:metrics" json:"metrics"`
	Context   datatypes.JSON `gorm:"column:context" json:"context"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
}

func (PlayEvent) TableName() string {
	return "play_event"
}
