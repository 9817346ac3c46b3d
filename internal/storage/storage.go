// Package storage declares the persistence contracts of the Q&A backend.
// Implementations live in the postgres and mongo subpackages.
package storage

//go:generate mockgen -destination=mocks/storage.go -package=mocks . Storage

import (
	"context"
	"errors"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

var (
	// ErrNotFound - the entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict - a uniqueness constraint was violated.
	ErrConflict = errors.New("conflict")
	// ErrParentNotFound - the parent reply is missing or belongs to another answer.
	ErrParentNotFound = errors.New("parent not found")
)

type Users interface {
	// CreateUser fails with ErrConflict when the (normalized) email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	// Authors resolves display fields for a set of user ids. Unknown ids are skipped.
	Authors(ctx context.Context, ids []string) (map[string]models.Author, error)
}

type Questions interface {
	CreateQuestion(ctx context.Context, q *models.Question) error
	// QuestionByID returns the question with its ballot loaded.
	QuestionByID(ctx context.Context, id string) (*models.Question, error)
	UpdateQuestion(ctx context.Context, q *models.Question) error
	// DeleteQuestion removes the question together with its answers, their
	// replies, all related comments and votes.
	DeleteQuestion(ctx context.Context, id string) error
	// ListQuestions returns one page (ballots loaded) and the total match count.
	ListQuestions(ctx context.Context, f models.QuestionFilter) ([]models.Question, int64, error)
	IncrementViews(ctx context.Context, id string) error
	// CountAnswers returns answer counts grouped by question id.
	CountAnswers(ctx context.Context, questionIDs []string) (map[string]int64, error)
}

type Answers interface {
	CreateAnswer(ctx context.Context, a *models.Answer) error
	AnswerByID(ctx context.Context, id string) (*models.Answer, error)
	// AnswersByQuestion returns answers ordered accepted first, then by vote
	// count, then oldest first.
	AnswersByQuestion(ctx context.Context, questionID string) ([]models.Answer, error)
	// AcceptAnswer clears accepted on every sibling and sets it on answerID,
	// atomically.
	AcceptAnswer(ctx context.Context, questionID, answerID string) error
}

type Replies interface {
	// CreateReply fails with ErrParentNotFound when ParentReplyID does not
	// name a reply of the same answer.
	CreateReply(ctx context.Context, r *models.Reply) error
	// ListReplies returns direct children of parentReplyID, or top-level
	// replies when parentReplyID is empty. Newest first.
	ListReplies(ctx context.Context, answerID, parentReplyID string) ([]models.Reply, error)
}

type Comments interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	// ListComments returns comments of a question or answer, oldest first.
	ListComments(ctx context.Context, target vote.Target) ([]models.Comment, error)
}

type Votes interface {
	// ToggleVote applies vote.Next for userID on target as an atomic
	// per-(target, user) operation and returns the resulting ballot.
	ToggleVote(ctx context.Context, target vote.Target, userID string, dir vote.Direction) (*vote.Ballot, error)
}

type Activity interface {
	UserStats(ctx context.Context, userID string) (models.UserStats, error)
	// RecentActivity returns up to perKind latest questions, answers and
	// comments of the user, unsorted across kinds. Title carries the title of
	// the question each item belongs to.
	RecentActivity(ctx context.Context, userID string, perKind int) ([]models.Activity, error)
}

// Storage is everything the service layer needs.
type Storage interface {
	Users
	Questions
	Answers
	Replies
	Comments
	Votes
	Activity

	Health(ctx context.Context) map[string]string
	Close(ctx context.Context) error
}
