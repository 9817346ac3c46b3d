package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// Answer no longer carries a replies id list; replies are always looked up
// by their answer reference.
type Answer struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Content    string  `gorm:"type:text;not null" json:"content" bson:"content"`
	AuthorID   string  `gorm:"type:uuid;not null;index" json:"authorId" bson:"author"`
	Author     *Author `gorm:"-" json:"author,omitempty" bson:"-"`
	QuestionID string  `gorm:"type:uuid;not null;index" json:"questionId" bson:"question"`
	Accepted   bool    `gorm:"not null;default:false" json:"accepted" bson:"accepted"`

	vote.Ballot `gorm:"-" bson:",inline"`
	VoteCount   int `gorm:"-" json:"voteCount" bson:"-"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (a *Answer) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Answer) VoteBallot() *vote.Ballot { return &a.Ballot }

func (a *Answer) Derive() { a.VoteCount = a.Ballot.Count() }

type CreateAnswerRequest struct {
	Content    string `json:"content" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
}
