package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emilythestrangee/qna-forum/backend/internal/auth"
	"github.com/emilythestrangee/qna-forum/backend/internal/models"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

const seedPassword = "password123"

var seedUsers = []models.RegisterRequest{
	{Name: "John Doe", Email: "john@example.com", Password: seedPassword},
	{Name: "Jane Smith", Email: "jane@example.com", Password: seedPassword},
	{Name: "Alex Kim", Email: "alex@example.com", Password: seedPassword},
}

var seedQuestions = []models.CreateQuestionRequest{
	{
		Title:   "How do I cancel a long-running query from a Go HTTP handler?",
		Content: "My handler calls the database and keeps running after the client disconnects. How do I stop the query?",
		Tags:    []string{"go", "database", "context"},
	},
	{
		Title:   "What is the difference between a slice and an array?",
		Content: "When should I use one over the other, and why does append sometimes modify the original?",
		Tags:    []string{"go", "basics"},
	},
	{
		Title:   "How do I index an array column in PostgreSQL?",
		Content: "I filter on tags with ANY() and the query does a sequential scan.",
		Tags:    []string{"postgresql", "indexing"},
	},
}

var seedAnswers = []string{
	"Pass r.Context() into the query; the driver cancels it when the client goes away.",
	"Arrays have a fixed size that is part of the type. Slices are views over an array.",
	"Create a GIN index on the column and filter with the @> operator or = ANY().",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo users, questions, answers, replies and votes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(ctx context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	st, err := openStorage(ctx, cfg.Database, true)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.Close(context.Background())

	// seeding goes through the service so every rule applies
	svc := service.New(st, nil, nil, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), cfg.Limits)

	userIDs := make([]string, 0, len(seedUsers))
	for _, u := range seedUsers {
		res, err := svc.Register(ctx, u)
		if errors.Is(err, service.ErrConflict) {
			res, err = svc.Login(ctx, models.LoginRequest{Email: u.Email, Password: u.Password})
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		userIDs = append(userIDs, res.User.ID)
	}

	for i, req := range seedQuestions {
		asker := userIDs[i%len(userIDs)]
		answerer := userIDs[(i+1)%len(userIDs)]
		voter := userIDs[(i+2)%len(userIDs)]

		q, err := svc.CreateQuestion(ctx, asker, req)
		if err != nil {
			return fmt.Errorf("seed question %d: %w", i, err)
		}

		a, err := svc.CreateAnswer(ctx, answerer, models.CreateAnswerRequest{Content: seedAnswers[i], QuestionID: q.ID})
		if err != nil {
			return fmt.Errorf("seed answer %d: %w", i, err)
		}

		top, err := svc.CreateReply(ctx, asker, a.ID, models.CreateReplyRequest{Content: "Thanks, that helped."})
		if err != nil {
			return fmt.Errorf("seed reply %d: %w", i, err)
		}
		if _, err := svc.CreateReply(ctx, answerer, a.ID, models.CreateReplyRequest{Content: "Glad it worked!", ParentReplyID: top.ID}); err != nil {
			return fmt.Errorf("seed nested reply %d: %w", i, err)
		}

		if _, err := svc.CreateComment(ctx, voter, models.CreateCommentRequest{Content: "Good question.", QuestionID: q.ID}); err != nil {
			return fmt.Errorf("seed comment %d: %w", i, err)
		}

		for _, v := range []struct {
			kind vote.Kind
			id   string
			user string
		}{
			{vote.KindQuestion, q.ID, answerer},
			{vote.KindQuestion, q.ID, voter},
			{vote.KindAnswer, a.ID, asker},
		} {
			if _, err := svc.Vote(ctx, v.kind, v.id, v.user, string(vote.Up)); err != nil {
				return fmt.Errorf("seed vote %d: %w", i, err)
			}
		}

		if _, err := svc.AcceptAnswer(ctx, asker, a.ID); err != nil {
			return fmt.Errorf("seed accept %d: %w", i, err)
		}
	}

	log.Info("seed complete", "users", len(userIDs), "questions", len(seedQuestions), "password", seedPassword)
	return nil
}
