package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
	"github.com/emilythestrangee/qna-forum/backend/internal/metrics"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

// normalizeTags trims, drops empties and de-duplicates, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

func validateTitle(title string) error {
	switch {
	case title == "":
		return because(ErrInvalidArgument, "title is required")
	case utf8.RuneCountInString(title) > models.MaxTitleLength:
		return because(ErrInvalidArgument, fmt.Sprintf("title must be at most %d characters", models.MaxTitleLength))
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) < models.MinTags || len(tags) > models.MaxTags {
		return because(ErrInvalidArgument, fmt.Sprintf("between %d and %d tags are required", models.MinTags, models.MaxTags))
	}
	return nil
}

// CreateQuestion stores a new question authored by userID.
func (s *Service) CreateQuestion(ctx context.Context, userID string, req models.CreateQuestionRequest) (*models.Question, error) {
	const op = "service/questions/CreateQuestion"

	lg := logger.From(ctx).With("op", op, "user_id", userID)
	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	q := &models.Question{
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
		Tags:     normalizeTags(req.Tags),
		Images:   normalizeImages(req.Images),
		AuthorID: userID,
	}
	if err := validateTitle(q.Title); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if q.Content == "" {
		return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "content is required"))
	}
	if err := validateTags(q.Tags); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.CreateQuestion(ctx, q); err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	s.invalidatePages(ctx)

	one := []models.Question{*q}
	if err := joinAuthors(ctx, s.storage, one, questionAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	lg.Info("question created", "question_id", q.ID)
	return &one[0], nil
}

// normalizeFilter applies paging defaults and clamps.
func (s *Service) normalizeFilter(f models.QuestionFilter) models.QuestionFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = s.limits.DefaultPageSize
	}
	if f.Limit > s.limits.MaxPageSize {
		f.Limit = s.limits.MaxPageSize
	}
	// Keep the offset within int32 so stores never see a negative skip.
	if maxPage := math.MaxInt32/f.Limit + 1; f.Page > maxPage {
		f.Page = maxPage
	}
	if f.Sort != models.SortTop {
		f.Sort = models.SortLatest
	}
	f.Subject = strings.TrimSpace(f.Subject)
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// ListQuestions returns one page of questions with vote and answer counts.
// Pages are served from the listing cache when possible.
func (s *Service) ListQuestions(ctx context.Context, f models.QuestionFilter) (*models.QuestionPage, error) {
	const op = "service/questions/ListQuestions"

	f = s.normalizeFilter(f)
	lg := logger.From(ctx).With("op", op, "page", f.Page, "limit", f.Limit, "sort", f.Sort)

	lookup, cacheErr := s.pages.Get(ctx, f)
	switch {
	case cacheErr != nil:
		metrics.ListingCache.WithLabelValues("error").Inc()
		lg.Warn("listing cache read failed", "err", cacheErr)
	case lookup.Hit:
		metrics.ListingCache.WithLabelValues("hit").Inc()
		return lookup.Page, nil
	default:
		metrics.ListingCache.WithLabelValues("miss").Inc()
	}

	questions, total, err := s.storage.ListQuestions(ctx, f)
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}

	ids := make([]string, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
	}
	counts, err := s.storage.CountAnswers(ctx, ids)
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	for i := range questions {
		questions[i].AnswerCount = counts[questions[i].ID]
	}

	if err := joinAuthors(ctx, s.storage, questions, questionAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}

	page := &models.QuestionPage{
		Questions:   questions,
		TotalPages:  totalPages(total, f.Limit),
		CurrentPage: f.Page,
	}
	if page.Questions == nil {
		page.Questions = []models.Question{}
	}

	if cacheErr == nil {
		if err := s.pages.Set(ctx, lookup.Generation, f, page); err != nil {
			lg.Warn("listing cache write failed", "err", err)
		}
	}
	return page, nil
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// GetQuestion counts a view and returns the question with its answers,
// accepted first.
func (s *Service) GetQuestion(ctx context.Context, id string) (*models.QuestionDetail, error) {
	const op = "service/questions/GetQuestion"

	id = strings.TrimSpace(id)
	lg := logger.From(ctx).With("op", op, "question_id", id)

	if err := s.storage.IncrementViews(ctx, id); err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}

	q, err := s.storage.QuestionByID(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	answers, err := s.storage.AnswersByQuestion(ctx, id)
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	if answers == nil {
		answers = []models.Answer{}
	}
	q.AnswerCount = int64(len(answers))

	one := []models.Question{*q}
	if err := joinAuthors(ctx, s.storage, one, questionAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	if err := joinAuthors(ctx, s.storage, answers, answerAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}

	return &models.QuestionDetail{Question: one[0], Answers: answers}, nil
}

// ownedQuestion loads a question and checks that userID wrote it.
func (s *Service) ownedQuestion(ctx context.Context, op, id, userID string) (*models.Question, error) {
	lg := logger.From(ctx).With("op", op, "question_id", id, "user_id", userID)

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	q, err := s.storage.QuestionByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	if q.AuthorID != userID {
		lg.Warn("not the question author")
		return nil, fmt.Errorf("%s: %w", op, because(ErrForbidden, "only the author can modify this question"))
	}
	return q, nil
}

// UpdateQuestion applies the fields present in req. Only the author may edit.
func (s *Service) UpdateQuestion(ctx context.Context, userID, id string, req models.UpdateQuestionRequest) (*models.Question, error) {
	const op = "service/questions/UpdateQuestion"

	q, err := s.ownedQuestion(ctx, op, id, userID)
	if err != nil {
		return nil, err
	}
	lg := logger.From(ctx).With("op", op, "question_id", q.ID)

	if req.Title != nil {
		q.Title = strings.TrimSpace(*req.Title)
		if err := validateTitle(q.Title); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if req.Content != nil {
		q.Content = strings.TrimSpace(*req.Content)
		if q.Content == "" {
			return nil, fmt.Errorf("%s: %w", op, because(ErrInvalidArgument, "content is required"))
		}
	}
	if req.Tags != nil {
		q.Tags = normalizeTags(req.Tags)
		if err := validateTags(q.Tags); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if req.Images != nil {
		q.Images = normalizeImages(req.Images)
	}

	if err := s.storage.UpdateQuestion(ctx, q); err != nil {
		return nil, storageErr(lg, op, err, "question not found")
	}
	s.invalidatePages(ctx)

	one := []models.Question{*q}
	if err := joinAuthors(ctx, s.storage, one, questionAuthor); err != nil {
		return nil, storageErr(lg, op, err, "author not found")
	}
	return &one[0], nil
}

// DeleteQuestion removes a question with everything hanging off it.
func (s *Service) DeleteQuestion(ctx context.Context, userID, id string) error {
	const op = "service/questions/DeleteQuestion"

	q, err := s.ownedQuestion(ctx, op, id, userID)
	if err != nil {
		return err
	}
	lg := logger.From(ctx).With("op", op, "question_id", q.ID)

	if err := s.storage.DeleteQuestion(ctx, q.ID); err != nil {
		return storageErr(lg, op, err, "question not found")
	}
	s.invalidatePages(ctx)
	lg.Info("question deleted")
	return nil
}
