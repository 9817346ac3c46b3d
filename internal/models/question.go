package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

const (
	MaxTitleLength = 200
	MinTags        = 1
	MaxTags        = 5
)

type Question struct {
	ID       string         `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Title    string         `gorm:"size:200;not null" json:"title" bson:"title"`
	Content  string         `gorm:"type:text;not null" json:"content" bson:"content"`
	Tags     pq.StringArray `gorm:"type:text[]" json:"tags" bson:"tags"`
	AuthorID string         `gorm:"type:uuid;not null;index" json:"authorId" bson:"author"`
	Author   *Author        `gorm:"-" json:"author,omitempty" bson:"-"`
	Views    int64          `gorm:"not null;default:0" json:"views" bson:"views"`
	Images   pq.StringArray `gorm:"type:text[]" json:"images" bson:"images"`

	vote.Ballot `gorm:"-" bson:",inline"`
	VoteCount   int   `gorm:"-" json:"voteCount" bson:"-"`
	AnswerCount int64 `gorm:"-" json:"answerCount" bson:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (q *Question) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (q *Question) VoteBallot() *vote.Ballot { return &q.Ballot }

// Derive recomputes the read-time fields that are never stored.
func (q *Question) Derive() { q.VoteCount = q.Ballot.Count() }

type CreateQuestionRequest struct {
	Title   string   `json:"title" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"required"`
	Images  []string `json:"images"`
}

type UpdateQuestionRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
	Images  []string `json:"images"`
}

// Question listing sort modes.
const (
	SortLatest = "latest"
	SortTop    = "top"
)

type QuestionFilter struct {
	Page    int
	Limit   int
	Sort    string
	Subject string
	Search  string
}

func (f QuestionFilter) Offset() int { return (f.Page - 1) * f.Limit }

type QuestionPage struct {
	Questions   []Question `json:"questions"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

type QuestionDetail struct {
	Question Question `json:"question"`
	Answers  []Answer `json:"answers"`
}
