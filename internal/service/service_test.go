package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/emilythestrangee/qna-forum/backend/internal/auth"
	"github.com/emilythestrangee/qna-forum/backend/internal/cache"
	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/media"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage/mocks"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// memPages is an in-memory PageCache that counts invalidations.
type memPages struct {
	mu          sync.Mutex
	gen         int64
	pages       map[models.QuestionFilter]*models.QuestionPage
	invalidated int
}

func newMemPages() *memPages {
	return &memPages{pages: map[models.QuestionFilter]*models.QuestionPage{}}
}

func (m *memPages) Get(_ context.Context, f models.QuestionFilter) (cache.Lookup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[f]
	return cache.Lookup{Page: p, Hit: ok, Generation: m.gen}, nil
}

func (m *memPages) Set(_ context.Context, gen int64, f models.QuestionFilter, p *models.QuestionPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen == m.gen {
		m.pages[f] = p
	}
	return nil
}

func (m *memPages) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated++
	m.gen++
	m.pages = map[models.QuestionFilter]*models.QuestionPage{}
	return nil
}

func (m *memPages) Close() error { return nil }

type stubUploader struct {
	err error
}

func (u stubUploader) ImageUploadURL(_ context.Context, userID, contentType string, size int64) (*media.Upload, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &media.Upload{Key: "questions/" + userID + "/x.png", UploadURL: "http://upload", PublicURL: "http://public"}, nil
}

type fixture struct {
	svc   *Service
	st    *mocks.MockStorage
	pages *memPages
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	pages := newMemPages()
	svc := New(st, pages, stubUploader{}, auth.NewTokens("test-secret", time.Hour),
		config.LimitsConfig{DefaultPageSize: 10, MaxPageSize: 50})
	return fixture{svc: svc, st: st, pages: pages}
}

// noAuthors stubs author resolution for tests that don't care about it.
func (f fixture) noAuthors() {
	f.st.EXPECT().Authors(gomock.Any(), gomock.Any()).Return(map[string]models.Author{}, nil).AnyTimes()
}

// toggleOn makes ToggleVote operate on a shared in-memory ballot.
func (f fixture) toggleOn(b *vote.Ballot) {
	var mu sync.Mutex
	f.st.EXPECT().ToggleVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ vote.Target, userID string, dir vote.Direction) (*vote.Ballot, error) {
			mu.Lock()
			defer mu.Unlock()
			b.Toggle(userID, dir)
			cp := vote.Ballot{
				Upvotes:   append([]string{}, b.Upvotes...),
				Downvotes: append([]string{}, b.Downvotes...),
			}
			return &cp, nil
		}).AnyTimes()
}

func TestVote_FirstUpvote(t *testing.T) {
	f := setup(t)
	f.toggleOn(&vote.Ballot{})

	res, err := f.svc.Vote(context.Background(), vote.KindQuestion, "q1", "alice", "up")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, res.Upvotes)
	assert.Empty(t, res.Downvotes)
	assert.Equal(t, 1, res.VoteCount)
	require.NotNil(t, res.UserVote)
	assert.Equal(t, vote.Up, *res.UserVote)
	assert.Equal(t, 1, f.pages.invalidated)
}

func TestVote_UpThenOtherDown(t *testing.T) {
	f := setup(t)
	f.toggleOn(&vote.Ballot{})
	ctx := context.Background()

	_, err := f.svc.Vote(ctx, vote.KindAnswer, "a1", "alice", "up")
	require.NoError(t, err)
	res, err := f.svc.Vote(ctx, vote.KindAnswer, "a1", "bob", "down")
	require.NoError(t, err)

	assert.Equal(t, 0, res.VoteCount)
	assert.Equal(t, 1, res.UpvoteCount)
	assert.Equal(t, 1, res.DownvoteCount)
	// answers don't appear on listing pages
	assert.Zero(t, f.pages.invalidated)
}

func TestVote_RepeatClears(t *testing.T) {
	f := setup(t)
	f.toggleOn(&vote.Ballot{})
	ctx := context.Background()

	_, err := f.svc.Vote(ctx, vote.KindReply, "r1", "alice", "up")
	require.NoError(t, err)
	res, err := f.svc.Vote(ctx, vote.KindReply, "r1", "alice", "up")
	require.NoError(t, err)

	assert.Empty(t, res.Upvotes)
	assert.Empty(t, res.Downvotes)
	assert.Equal(t, 0, res.VoteCount)
	assert.Nil(t, res.UserVote)
}

func TestVote_Switch(t *testing.T) {
	f := setup(t)
	f.toggleOn(&vote.Ballot{Upvotes: []string{"alice"}})

	res, err := f.svc.Vote(context.Background(), vote.KindComment, "c1", "alice", "down")
	require.NoError(t, err)
	assert.Empty(t, res.Upvotes)
	assert.Equal(t, []string{"alice"}, res.Downvotes)
	assert.Equal(t, -1, res.VoteCount)
}

func TestVote_Rejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		kind   vote.Kind
		id     string
		user   string
		dir    string
		target error
	}{
		{"anonymous", vote.KindQuestion, "q1", "", "up", ErrUnauthorized},
		{"bad direction", vote.KindQuestion, "q1", "alice", "sideways", ErrInvalidArgument},
		{"padded direction", vote.KindQuestion, "q1", "alice", " up ", ErrInvalidArgument},
		{"bad kind", vote.Kind("user"), "q1", "alice", "up", ErrInvalidArgument},
		{"empty id", vote.KindQuestion, " ", "alice", "up", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Vote(ctx, tt.kind, tt.id, tt.user, tt.dir)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestVote_MissingTarget(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().ToggleVote(gomock.Any(), vote.Target{Kind: vote.KindAnswer, ID: "nope"}, "alice", vote.Up).
		Return(nil, storage.ErrNotFound)

	_, err := f.svc.Vote(context.Background(), vote.KindAnswer, "nope", "alice", "up")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "answer not found", Reason(err))
}

func TestVote_StorageFailureIsInternal(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().ToggleVote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	_, err := f.svc.Vote(context.Background(), vote.KindQuestion, "q1", "alice", "up")
	require.ErrorIs(t, err, ErrInternal)
	assert.NotContains(t, err.Error(), "connection reset")
}

func TestAcceptAnswer_NonAuthorForbidden(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.st.EXPECT().AnswerByID(ctx, "a1").Return(&models.Answer{ID: "a1", QuestionID: "q1", AuthorID: "bob"}, nil)
	f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1", AuthorID: "alice"}, nil)

	// the answer's own author is not the question's author either
	_, err := f.svc.AcceptAnswer(ctx, "bob", "a1")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptAnswer_ByQuestionAuthor(t *testing.T) {
	f := setup(t)
	f.noAuthors()
	ctx := context.Background()

	f.st.EXPECT().AnswerByID(ctx, "a1").Return(&models.Answer{ID: "a1", QuestionID: "q1", AuthorID: "bob"}, nil)
	f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1", AuthorID: "alice"}, nil)
	f.st.EXPECT().AcceptAnswer(ctx, "q1", "a1").Return(nil)

	a, err := f.svc.AcceptAnswer(ctx, "alice", "a1")
	require.NoError(t, err)
	assert.True(t, a.Accepted)
	require.NotNil(t, a.Author)
	assert.Equal(t, "bob", a.Author.ID)
}

func TestAcceptAnswer_MissingAnswer(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().AnswerByID(gomock.Any(), "a1").Return(nil, storage.ErrNotFound)

	_, err := f.svc.AcceptAnswer(context.Background(), "alice", "a1")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "answer not found", Reason(err))
}

func TestListReplies_TopLevel(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.st.EXPECT().ListReplies(ctx, "a1", "").Return([]models.Reply{{ID: "r1", AuthorID: "u1", AnswerID: "a1"}}, nil)
	f.st.EXPECT().Authors(ctx, []string{"u1"}).Return(map[string]models.Author{"u1": {ID: "u1", Name: "Uma"}}, nil)

	replies, err := f.svc.ListReplies(ctx, "a1", "  ")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.True(t, replies[0].IsTopLevel())
	assert.Equal(t, "Uma", replies[0].Author.Name)
}

func TestListReplies_EmptyIsNotNil(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().ListReplies(gomock.Any(), "a1", "r9").Return(nil, nil)

	replies, err := f.svc.ListReplies(context.Background(), "a1", "r9")
	require.NoError(t, err)
	assert.NotNil(t, replies)
	assert.Empty(t, replies)
}

func TestCreateReply(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		f := setup(t)
		f.noAuthors()
		f.st.EXPECT().CreateReply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Reply) error {
			require.NotNil(t, r.ParentReplyID)
			assert.Equal(t, "r1", *r.ParentReplyID)
			r.ID = "r2"
			return nil
		})

		r, err := f.svc.CreateReply(context.Background(), "u1", "a1", models.CreateReplyRequest{Content: " hi ", ParentReplyID: "r1"})
		require.NoError(t, err)
		assert.Equal(t, "hi", r.Content)
		assert.Equal(t, "r2", r.ID)
	})

	t.Run("foreign parent", func(t *testing.T) {
		f := setup(t)
		f.st.EXPECT().CreateReply(gomock.Any(), gomock.Any()).Return(storage.ErrParentNotFound)

		_, err := f.svc.CreateReply(context.Background(), "u1", "a1", models.CreateReplyRequest{Content: "x", ParentReplyID: "other"})
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "parent reply not found", Reason(err))
	})

	t.Run("blank content", func(t *testing.T) {
		f := setup(t)
		_, err := f.svc.CreateReply(context.Background(), "u1", "a1", models.CreateReplyRequest{Content: "   "})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestCreateQuestion_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    models.CreateQuestionRequest
		reason string
	}{
		{"no title", models.CreateQuestionRequest{Title: " ", Content: "c", Tags: []string{"go"}}, "title is required"},
		{"long title", models.CreateQuestionRequest{Title: strings.Repeat("é", 201), Content: "c", Tags: []string{"go"}}, "title must be at most 200 characters"},
		{"no content", models.CreateQuestionRequest{Title: "t", Content: "", Tags: []string{"go"}}, "content is required"},
		{"no tags", models.CreateQuestionRequest{Title: "t", Content: "c", Tags: []string{" ", ""}}, "between 1 and 5 tags are required"},
		{"too many tags", models.CreateQuestionRequest{Title: "t", Content: "c", Tags: []string{"a", "b", "c", "d", "e", "f"}}, "between 1 and 5 tags are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateQuestion(ctx, "u1", tt.req)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, tt.reason, Reason(err))
		})
	}
}

func TestCreateQuestion_NormalizesAndInvalidates(t *testing.T) {
	f := setup(t)
	f.noAuthors()

	f.st.EXPECT().CreateQuestion(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q *models.Question) error {
		q.ID = "q1"
		return nil
	})

	q, err := f.svc.CreateQuestion(context.Background(), "u1", models.CreateQuestionRequest{
		Title:   "  How? ",
		Content: "body",
		Tags:    []string{"go", " go ", "sql", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "How?", q.Title)
	assert.Equal(t, []string{"go", "sql"}, []string(q.Tags))
	assert.Equal(t, 1, f.pages.invalidated)
}

func TestListQuestions_ClampsAndCaches(t *testing.T) {
	f := setup(t)
	f.noAuthors()
	ctx := context.Background()

	want := models.QuestionFilter{Page: 1, Limit: 50, Sort: models.SortLatest}
	f.st.EXPECT().ListQuestions(ctx, want).Return([]models.Question{{ID: "q1", AuthorID: "u1"}, {ID: "q2", AuthorID: "u1"}}, int64(101), nil).Times(1)
	f.st.EXPECT().CountAnswers(ctx, []string{"q1", "q2"}).Return(map[string]int64{"q1": 3}, nil).Times(1)

	page, err := f.svc.ListQuestions(ctx, models.QuestionFilter{Page: -2, Limit: 500, Sort: "weird"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, int64(3), page.Questions[0].AnswerCount)
	assert.Zero(t, page.Questions[1].AnswerCount)

	// second call is served from the cache
	again, err := f.svc.ListQuestions(ctx, models.QuestionFilter{Page: 0, Limit: 99})
	require.NoError(t, err)
	assert.Equal(t, page, again)
}

func TestListQuestions_HugePage(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().ListQuestions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got models.QuestionFilter) ([]models.Question, int64, error) {
			assert.GreaterOrEqual(t, got.Offset(), 0)
			assert.LessOrEqual(t, got.Offset(), math.MaxInt32)
			return nil, int64(7), nil
		})
	f.st.EXPECT().CountAnswers(gomock.Any(), []string{}).Return(map[string]int64{}, nil)

	page, err := f.svc.ListQuestions(context.Background(), models.QuestionFilter{Page: 1e18, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListQuestions_InvalidatedWhileBuilding(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.st.EXPECT().ListQuestions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.QuestionFilter) ([]models.Question, int64, error) {
			// a question vote commits between the read and the cache write
			require.NoError(t, f.pages.Invalidate(ctx))
			return nil, int64(0), nil
		}).Times(2)
	f.st.EXPECT().CountAnswers(gomock.Any(), []string{}).Return(map[string]int64{}, nil).Times(2)

	_, err := f.svc.ListQuestions(ctx, models.QuestionFilter{})
	require.NoError(t, err)
	_, err = f.svc.ListQuestions(ctx, models.QuestionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.pages.invalidated)
}

func TestListQuestions_Empty(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().ListQuestions(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil)
	f.st.EXPECT().CountAnswers(gomock.Any(), []string{}).Return(map[string]int64{}, nil)

	page, err := f.svc.ListQuestions(context.Background(), models.QuestionFilter{Sort: models.SortTop, Subject: "rust"})
	require.NoError(t, err)
	assert.NotNil(t, page.Questions)
	assert.Zero(t, page.TotalPages)
}

func TestGetQuestion(t *testing.T) {
	f := setup(t)
	f.noAuthors()
	ctx := context.Background()

	gomock.InOrder(
		f.st.EXPECT().IncrementViews(ctx, "q1").Return(nil),
		f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1", AuthorID: "u1", Views: 1}, nil),
		f.st.EXPECT().AnswersByQuestion(ctx, "q1").Return([]models.Answer{{ID: "a1", Accepted: true}, {ID: "a2"}}, nil),
	)

	d, err := f.svc.GetQuestion(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Question.AnswerCount)
	assert.Equal(t, "a1", d.Answers[0].ID)
}

func TestGetQuestion_Missing(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().IncrementViews(gomock.Any(), "q1").Return(storage.ErrNotFound)

	_, err := f.svc.GetQuestion(context.Background(), "q1")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "question not found", Reason(err))
}

func TestUpdateDeleteQuestion_AuthorOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1", AuthorID: "alice"}, nil).Times(2)

	title := "new"
	_, err := f.svc.UpdateQuestion(ctx, "bob", "q1", models.UpdateQuestionRequest{Title: &title})
	require.ErrorIs(t, err, ErrForbidden)

	err = f.svc.DeleteQuestion(ctx, "bob", "q1")
	require.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, f.pages.invalidated)
}

func TestDeleteQuestion(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1", AuthorID: "alice"}, nil)
	f.st.EXPECT().DeleteQuestion(ctx, "q1").Return(nil)

	require.NoError(t, f.svc.DeleteQuestion(ctx, "alice", "q1"))
	assert.Equal(t, 1, f.pages.invalidated)
}

func TestUpdateQuestion_PartialFields(t *testing.T) {
	f := setup(t)
	f.noAuthors()
	ctx := context.Background()

	f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1", AuthorID: "alice", Title: "old", Content: "body", Tags: []string{"go"}}, nil)
	f.st.EXPECT().UpdateQuestion(ctx, gomock.Any()).Return(nil)

	content := " edited "
	q, err := f.svc.UpdateQuestion(ctx, "alice", "q1", models.UpdateQuestionRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "old", q.Title)
	assert.Equal(t, "edited", q.Content)
	assert.Equal(t, []string{"go"}, []string(q.Tags))
}

func TestCreateComment_ExactlyOneTarget(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateComment(ctx, "u1", models.CreateCommentRequest{Content: "x"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.CreateComment(ctx, "u1", models.CreateCommentRequest{Content: "x", QuestionID: "q1", AnswerID: "a1"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	f.st.EXPECT().CreateComment(ctx, gomock.Any()).Return(storage.ErrNotFound)
	_, err = f.svc.CreateComment(ctx, "u1", models.CreateCommentRequest{Content: "x", AnswerID: "a1"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "answer not found", Reason(err))
}

func TestListComments(t *testing.T) {
	f := setup(t)
	f.noAuthors()
	ctx := context.Background()
	target := vote.Target{Kind: vote.KindQuestion, ID: "q1"}

	f.st.EXPECT().QuestionByID(ctx, "q1").Return(&models.Question{ID: "q1"}, nil)
	f.st.EXPECT().ListComments(ctx, target).Return([]models.Comment{{ID: "c1", AuthorID: "u1"}}, nil)

	comments, err := f.svc.ListComments(ctx, target)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	_, err = f.svc.ListComments(ctx, vote.Target{Kind: vote.KindReply, ID: "r1"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	var stored models.User
	f.st.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		u.ID = "u1"
		stored = *u
		return nil
	})

	res, err := f.svc.Register(ctx, models.RegisterRequest{Name: " Ann ", Email: "Ann@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", res.User.Email)
	assert.Equal(t, "Ann", res.User.Name)
	assert.NotEqual(t, "password1", stored.Password)

	id, err := f.svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	f.st.EXPECT().UserByEmail(ctx, "ann@example.com").Return(&stored, nil).Times(2)

	_, err = f.svc.Login(ctx, models.LoginRequest{Email: "ANN@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, models.LoginRequest{Email: "ann@example.com", Password: "wrong-one"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "invalid credentials", Reason(err))
}

func TestRegister_Rejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, models.RegisterRequest{Name: "a", Email: "a@b.c", Password: "short"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	f.st.EXPECT().CreateUser(ctx, gomock.Any()).Return(storage.ErrConflict)
	_, err = f.svc.Register(ctx, models.RegisterRequest{Name: "a", Email: "a@b.c", Password: "long-enough"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "email is already registered", Reason(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := setup(t)
	f.st.EXPECT().UserByEmail(gomock.Any(), "x@y.z").Return(nil, storage.ErrNotFound)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "whatever1"})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f.st.EXPECT().UserByID(ctx, "u1").Return(&models.User{ID: "u1", Name: "Ann"}, nil)
	f.st.EXPECT().UserStats(ctx, "u1").Return(models.UserStats{Questions: 5, Answers: 9, BestAnswers: 3}, nil)
	f.st.EXPECT().RecentActivity(ctx, "u1", activityPerKind).Return([]models.Activity{
		{ID: "q1", Type: models.ActivityQuestion, Title: "Q1", CreatedAt: base},
		{ID: "q2", Type: models.ActivityQuestion, Title: "Q2", CreatedAt: base.Add(1 * time.Hour)},
		{ID: "a1", Type: models.ActivityAnswer, Title: "Q9", CreatedAt: base.Add(5 * time.Hour)},
		{ID: "a2", Type: models.ActivityAnswer, Title: "Q8", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c1", Type: models.ActivityComment, Title: "Q7", CreatedAt: base.Add(4 * time.Hour)},
		{ID: "c2", Type: models.ActivityComment, Title: "Q6", CreatedAt: base.Add(-time.Hour)},
	}, nil)

	p, err := f.svc.Profile(ctx, "u1")
	require.NoError(t, err)

	names := make([]string, 0, len(p.Badges))
	for _, b := range p.Badges {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Curious", "Expert"}, names)

	require.Len(t, p.RecentActivity, activityLimit)
	assert.Equal(t, "Answer to: Q9", p.RecentActivity[0].Title)
	assert.Equal(t, "Comment on: Q7", p.RecentActivity[1].Title)
	assert.Equal(t, "Q1", p.RecentActivity[4].Title)
}

func TestUpdateProfile_SelfOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	bio := "hi"
	_, err := f.svc.UpdateProfile(ctx, "u2", "u1", models.UpdateProfileRequest{Bio: &bio})
	require.ErrorIs(t, err, ErrForbidden)

	f.st.EXPECT().UserByID(ctx, "u1").Return(&models.User{ID: "u1", Location: "Oslo"}, nil)
	f.st.EXPECT().UpdateUser(ctx, gomock.Any()).Return(nil)

	u, err := f.svc.UpdateProfile(ctx, "u1", "u1", models.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hi", u.Bio)
	assert.Equal(t, "Oslo", u.Location)
}

func TestImageUploadURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	ctx := context.Background()
	limits := config.LimitsConfig{}

	svc := New(st, nil, nil, auth.NewTokens("s", time.Hour), limits)
	_, err := svc.ImageUploadURL(ctx, "u1", "image/png", 10)
	require.ErrorIs(t, err, ErrUnavailable)

	svc = New(st, nil, stubUploader{err: fmt.Errorf("%w: content type %q is not allowed", media.ErrInvalidArgument, "text/plain")}, auth.NewTokens("s", time.Hour), limits)
	_, err = svc.ImageUploadURL(ctx, "u1", "text/plain", 10)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, `content type "text/plain" is not allowed`, Reason(err))

	svc = New(st, nil, stubUploader{}, auth.NewTokens("s", time.Hour), limits)
	up, err := svc.ImageUploadURL(ctx, "u1", "image/png", 10)
	require.NoError(t, err)
	assert.Equal(t, "questions/u1/x.png", up.Key)
}
