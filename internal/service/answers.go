package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

func (s *Service) CreateAnswer(ctx context.Context, userID string, req models.CreateAnswerRequest) (*models.Answer, error) {
	const op = "service/answers/CreateAnswer"

	questionID := strings.TrimSpace(req.QuestionID)
	lg := logger.From(ctx).With("op", op, "user_id", userID, "question_id", questionID)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "content is required"))
	}
	if questionID == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "questionId is required"))
	}

	a := &models.Answer{Content: content, AuthorID: userID, QuestionID: questionID}
	if err := s.storage.CreateAnswer(ctx, a); err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	// answerCount on listing pages changed
	s.invalidatePages(ctx)

	one := []models.Answer{*a}
	if err := joinAuthors(ctx, s.storage, one, answerAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return &one[0], nil
}

// ListAnswers returns the answers of a question, accepted first, then by
// vote count, then oldest first.
func (s *Service) ListAnswers(ctx context.Context, questionID string) ([]models.Answer, error) {
	const op = "service/answers/ListAnswers"

	questionID = strings.TrimSpace(questionID)
	lg := logger.From(ctx).With("op", op, "question_id", questionID)

	if questionID == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "questionId is required"))
	}
	if _, err := s.storage.QuestionByID(ctx, questionID); err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}

	answers, err := s.storage.AnswersByQuestion(ctx, questionID)
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	if answers == nil {
		answers = []models.Answer{}
	}
	if err := joinAuthors(ctx, s.storage, answers, answerAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return answers, nil
}

// AcceptAnswer marks answerID as the accepted answer of its question,
// clearing any previous one. Only the question's author may accept.
func (s *Service) AcceptAnswer(ctx context.Context, userID, answerID string) (*models.Answer, error) {
	const op = "service/answers/AcceptAnswer"

	answerID = strings.TrimSpace(answerID)
	lg := logger.From(ctx).With("op", op, "user_id", userID, "answer_id", answerID)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	a, err := s.storage.AnswerByID(ctx, answerID)
	if err != nil {
		return nil, storageErr(lg, op, err, "answer not found")
	}
	q, err := s.storage.QuestionByID(ctx, a.QuestionID)
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	if q.AuthorID != userID {
		lg.Warn("accept by non-author", "question_id", q.ID)
		return nil, fmt.Errorf("%s: %w", op, because(ErrForbidden, "only the question author can accept an answer"))
	}

	if err := s.storage.AcceptAnswer(ctx, q.ID, a.ID); err != nil {
		return nil, storageErr(lg, op, err, "answer not found")
	}
	a.Accepted = true

	one := []models.Answer{*a}
	if err := joinAuthors(ctx, s.storage, one, answerAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	lg.Info("answer accepted", "question_id", q.ID)
	return &one[0], nil
}
