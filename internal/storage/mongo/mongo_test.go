//go:build integration

package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/storage"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

// Run with: go test -tags integration ./internal/storage/mongo -count=1

const testTimeout = 30 * time.Second

var mongoURL string

// TestMain starts one MongoDB container for the package; every test gets
// its own database.
func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7.0",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo container: %v\n", err)
		os.Exit(1)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := c.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = c.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}
	mongoURL = fmt.Sprintf("mongodb://%s:%s", host, port.Port())

	code := m.Run()
	_ = c.Terminate(context.Background())
	os.Exit(code)
}

func newStore(t *testing.T) *Mongo {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, config.DatabaseConfig{
		MongoURL: mongoURL,
		MongoDB:  "qna_test_" + uuid.NewString()[:8],
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})
	return m
}

func TestToggleVote_Sequence(t *testing.T) {
	m := newStore(t)
	ctx := context.Background()

	q := &models.Question{Title: "t", Content: "c", Tags: []string{"go"}, AuthorID: "author"}
	require.NoError(t, m.CreateQuestion(ctx, q))
	target := vote.Target{Kind: vote.KindQuestion, ID: q.ID}

	b, err := m.ToggleVote(ctx, target, "u1", vote.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, b.Upvotes)

	b, err = m.ToggleVote(ctx, target, "u1", vote.Down)
	require.NoError(t, err)
	assert.Empty(t, b.Upvotes)
	assert.Equal(t, []string{"u1"}, b.Downvotes)

	b, err = m.ToggleVote(ctx, target, "u1", vote.Down)
	require.NoError(t, err)
	assert.Empty(t, b.Upvotes)
	assert.Empty(t, b.Downvotes)

	_, err = m.ToggleVote(ctx, vote.Target{Kind: vote.KindReply, ID: "missing"}, "u1", vote.Up)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestToggleVote_ConcurrentVoters(t *testing.T) {
	m := newStore(t)
	ctx := context.Background()

	q := &models.Question{Title: "t", Content: "c", Tags: []string{"go"}, AuthorID: "author"}
	require.NoError(t, m.CreateQuestion(ctx, q))
	a := &models.Answer{Content: "a", AuthorID: "author", QuestionID: q.ID}
	require.NoError(t, m.CreateAnswer(ctx, a))
	target := vote.Target{Kind: vote.KindAnswer, ID: a.ID}

	const voters = 40
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		dir := vote.Up
		if i%2 == 0 {
			dir = vote.Down
		}
		go func(user string, dir vote.Direction) {
			defer wg.Done()
			if _, err := m.ToggleVote(ctx, target, user, dir); err != nil {
				errs <- err
			}
		}(fmt.Sprintf("user-%d", i), dir)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := m.AnswerByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Upvotes, voters/2)
	assert.Len(t, got.Downvotes, voters/2)
}

func TestListQuestions_SortFilterPage(t *testing.T) {
	m := newStore(t)
	ctx := context.Background()

	mk := func(title string, tags ...string) *models.Question {
		q := &models.Question{Title: title, Content: "content of " + title, Tags: tags, AuthorID: "a"}
		require.NoError(t, m.CreateQuestion(ctx, q))
		time.Sleep(5 * time.Millisecond)
		return q
	}
	old := mk("Maps in Go", "go")
	mid := mk("Mongo (aggregation)", "db")
	recent := mk("Generics", "go")

	_, err := m.ToggleVote(ctx, vote.Target{Kind: vote.KindQuestion, ID: old.ID}, "u1", vote.Up)
	require.NoError(t, err)
	_, err = m.ToggleVote(ctx, vote.Target{Kind: vote.KindQuestion, ID: recent.ID}, "u1", vote.Down)
	require.NoError(t, err)

	top, total, err := m.ListQuestions(ctx, models.QuestionFilter{Page: 1, Limit: 10, Sort: models.SortTop})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, top, 3)
	assert.Equal(t, []string{old.ID, mid.ID, recent.ID}, []string{top[0].ID, top[1].ID, top[2].ID})
	assert.Equal(t, 1, top[0].VoteCount)

	page2, total, err := m.ListQuestions(ctx, models.QuestionFilter{Page: 2, Limit: 1, Subject: "go"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, page2, 1)
	assert.Equal(t, old.ID, page2[0].ID)

	found, _, err := m.ListQuestions(ctx, models.QuestionFilter{Page: 1, Limit: 10, Search: "(AGGREGATION)"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, mid.ID, found[0].ID)
}

func TestRepliesAcceptAndCascade(t *testing.T) {
	m := newStore(t)
	ctx := context.Background()

	q := &models.Question{Title: "t", Content: "c", Tags: []string{"go"}, AuthorID: "author"}
	require.NoError(t, m.CreateQuestion(ctx, q))
	a1 := &models.Answer{Content: "a1", AuthorID: "x", QuestionID: q.ID}
	a2 := &models.Answer{Content: "a2", AuthorID: "x", QuestionID: q.ID}
	require.NoError(t, m.CreateAnswer(ctx, a1))
	require.NoError(t, m.CreateAnswer(ctx, a2))

	root := &models.Reply{Content: "root", AuthorID: "x", AnswerID: a1.ID}
	require.NoError(t, m.CreateReply(ctx, root))
	child := &models.Reply{Content: "child", AuthorID: "x", AnswerID: a1.ID, ParentReplyID: &root.ID}
	require.NoError(t, m.CreateReply(ctx, child))

	wrong := &models.Reply{Content: "x", AuthorID: "x", AnswerID: a2.ID, ParentReplyID: &root.ID}
	require.ErrorIs(t, m.CreateReply(ctx, wrong), storage.ErrParentNotFound)

	roots, err := m.ListReplies(ctx, a1.ID, "")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.True(t, roots[0].IsTopLevel())

	kids, err := m.ListReplies(ctx, a1.ID, root.ID)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, child.ID, kids[0].ID)

	require.NoError(t, m.AcceptAnswer(ctx, q.ID, a1.ID))
	require.NoError(t, m.AcceptAnswer(ctx, q.ID, a2.ID))
	answers, err := m.AnswersByQuestion(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, a2.ID, answers[0].ID)
	assert.True(t, answers[0].Accepted)
	assert.False(t, answers[1].Accepted)

	require.NoError(t, m.CreateComment(ctx, &models.Comment{Content: "c", AuthorID: "x", AnswerID: &a1.ID}))
	require.NoError(t, m.DeleteQuestion(ctx, q.ID))

	_, err = m.AnswerByID(ctx, a1.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
	n, err := m.replies.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUsersAndActivity(t *testing.T) {
	m := newStore(t)
	ctx := context.Background()

	u := &models.User{Name: "Bob", Email: " Bob@Example.com ", Password: "hash"}
	require.NoError(t, m.CreateUser(ctx, u))
	err := m.CreateUser(ctx, &models.User{Name: "Bobby", Email: "bob@example.com", Password: "hash"})
	require.ErrorIs(t, err, storage.ErrConflict)

	got, err := m.UserByEmail(ctx, "BOB@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	q := &models.Question{Title: "Why?", Content: "c", Tags: []string{"go"}, AuthorID: u.ID}
	require.NoError(t, m.CreateQuestion(ctx, q))
	a := &models.Answer{Content: "because", AuthorID: u.ID, QuestionID: q.ID}
	require.NoError(t, m.CreateAnswer(ctx, a))
	require.NoError(t, m.CreateComment(ctx, &models.Comment{Content: "nice", AuthorID: u.ID, AnswerID: &a.ID}))
	require.NoError(t, m.AcceptAnswer(ctx, q.ID, a.ID))

	stats, err := m.UserStats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{Questions: 1, Answers: 1, BestAnswers: 1}, stats)

	items, err := m.RecentActivity(ctx, u.ID, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, it := range items {
		assert.Equal(t, "Why?", it.Title, it.Type)
		assert.Equal(t, q.ID, it.QuestionID, it.Type)
	}

	authors, err := m.Authors(ctx, []string{u.ID, "ghost"})
	require.NoError(t, err)
	assert.Len(t, authors, 1)
	assert.Equal(t, "Bob", authors[u.ID].Name)
}
