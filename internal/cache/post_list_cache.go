package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"goblog/internal/model"
)

const postListKey = "blog:posts:all"

// PostListCache keeps the rendered post list in Redis between mutations.
type PostListCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPostListCache(client *redisv9.Client, ttl time.Duration) *PostListCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &PostListCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PostListCache) GetPosts(ctx context.Context) ([]model.Post, bool, error) {
	raw, err := c.client.Get(ctx, postListKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get post list failed: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached post list failed: %w", err)
	}
	return posts, true, nil
}

func (c *PostListCache) SetPosts(ctx context.Context, posts []model.Post) error {
	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal post list cache failed: %w", err)
	}
	if err := c.client.Set(ctx, postListKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set post list failed: %w", err)
	}
	return nil
}

func (c *PostListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, postListKey).Err(); err != nil {
		return fmt.Errorf("redis delete post list failed: %w", err)
	}
	return nil
}
