package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// Comment is attached to either a question or an answer, never both.
// Its likes/dislikes use the same ballot as votes.
type Comment struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Content    string  `gorm:"type:text;not null" json:"content" bson:"content"`
	AuthorID   string  `gorm:"type:uuid;not null;index" json:"authorId" bson:"author"`
	Author     *Author `gorm:"-" json:"author,omitempty" bson:"-"`
	QuestionID *string `gorm:"type:uuid;index" json:"questionId,omitempty" bson:"question,omitempty"`
	AnswerID   *string `gorm:"type:uuid;index" json:"answerId,omitempty" bson:"answer,omitempty"`

	vote.Ballot `gorm:"-" bson:",inline"`
	VoteCount   int `gorm:"-" json:"voteCount" bson:"-"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *Comment) VoteBallot() *vote.Ballot { return &c.Ballot }

func (c *Comment) Derive() { c.VoteCount = c.Ballot.Count() }

type CreateCommentRequest struct {
	Content    string `json:"content" binding:"required"`
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
}
