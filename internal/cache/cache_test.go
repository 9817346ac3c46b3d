package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/qna-forum/backend/internal/models"
)

func TestPageKey(t *testing.T) {
	c := newRedisCache(redis.NewClient(&redis.Options{}), "", 0)

	f := models.QuestionFilter{Page: 2, Limit: 10, Sort: models.SortTop, Subject: "go", Search: "a b&c"}
	k1 := c.pageKey(3, f)
	assert.Equal(t, k1, c.pageKey(3, f))
	assert.Contains(t, k1, "qna:questions:3:")

	assert.NotEqual(t, k1, c.pageKey(4, f), "generation is part of the key")

	f.Search = "a b"
	assert.NotEqual(t, k1, c.pageKey(3, f))
}

func TestNop(t *testing.T) {
	var c PageCache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, models.QuestionFilter{}, &models.QuestionPage{}))
	l, err := c.Get(ctx, models.QuestionFilter{})
	require.NoError(t, err)
	assert.False(t, l.Hit)
	assert.Nil(t, l.Page)
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Close())
}
