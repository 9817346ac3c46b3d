package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// Reply is a node of the reply tree under an answer. A nil ParentReplyID
// marks a top-level reply.
type Reply struct {
	ID            string  `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Content       string  `gorm:"type:text;not null" json:"content" bson:"content"`
	AuthorID      string  `gorm:"type:uuid;not null" json:"authorId" bson:"author"`
	Author        *Author `gorm:"-" json:"author,omitempty" bson:"-"`
	AnswerID      string  `gorm:"type:uuid;not null;index:idx_reply_tree,priority:1" json:"answerId" bson:"answer"`
	ParentReplyID *string `gorm:"type:uuid;index:idx_reply_tree,priority:2" json:"parentReplyId,omitempty" bson:"parentReply,omitempty"`

	vote.Ballot `gorm:"-" bson:",inline"`
	VoteCount   int `gorm:"-" json:"voteCount" bson:"-"`

	CreatedAt time.Time `gorm:"index:idx_reply_tree,priority:3" json:"createdAt" bson:"createdAt"`
}

func (r *Reply) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *Reply) VoteBallot() *vote.Ballot { return &r.Ballot }

func (r *Reply) Derive() { r.VoteCount = r.Ballot.Count() }

// IsTopLevel reports whether the reply hangs directly under its answer.
func (r *Reply) IsTopLevel() bool { return r.ParentReplyID == nil }

type CreateReplyRequest struct {
	Content       string `json:"content"`
	ParentReplyID string `json:"parentReplyId"`
}
