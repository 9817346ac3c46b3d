package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote model - one row per (target, user). Value is +1 or -1.
type Vote struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	TargetType string    `gorm:"size:16;not null;uniqueIndex:idx_vote_target_user,priority:1" json:"targetType"`
	TargetID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_vote_target_user,priority:2" json:"targetId"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_vote_target_user,priority:3;index" json:"userId"`
	Value      int       `gorm:"not null;check:chk_vote_value,value IN (-1, 1)" json:"value"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (v *Vote) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type VoteRequest struct {
	VoteType string `json:"voteType" binding:"required"`
}
