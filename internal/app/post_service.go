package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"goblog/internal/model"
	"goblog/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

// AsyncActivityPublisher enqueues audit rows for asynchronous persistence.
type AsyncActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

// PostListCache caches the full post list between mutations.
type PostListCache interface {
	GetPosts(ctx context.Context) ([]model.Post, bool, error)
	SetPosts(ctx context.Context, posts []model.Post) error
	Invalidate(ctx context.Context) error
}

type PostService struct {
	postRepo     *repository.PostRepository
	activityRepo *repository.ActivityRepository
	publisher    AsyncActivityPublisher
	cache        PostListCache
	location     *time.Location
}

type PostInput struct {
	Title string
	Body  string
}

func NewPostService(
	postRepo *repository.PostRepository,
	activityRepo *repository.ActivityRepository,
	publisher AsyncActivityPublisher,
	cache PostListCache,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
		cache:        cache,
		location:     tokyoLocation(),
	}
}

// Posts are timestamped in a fixed civil timezone regardless of server locale.
func tokyoLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

func validatePostInput(input PostInput) (string, string, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" {
		return "", "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > model.TitleMaxLen {
		return "", "", fmt.Errorf("%w: title must be at most %d characters", ErrValidation, model.TitleMaxLen)
	}
	if body == "" {
		return "", "", fmt.Errorf("%w: body is required", ErrValidation)
	}
	if utf8.RuneCountInString(body) > model.BodyMaxLen {
		return "", "", fmt.Errorf("%w: body must be at most %d characters", ErrValidation, model.BodyMaxLen)
	}
	return title, body, nil
}

// List returns every post in id order, serving from the cache when warm.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	if s.cache != nil {
		posts, hit, err := s.cache.GetPosts(ctx)
		if err != nil {
			log.Printf("post list cache read failed: %v", err)
		} else if hit {
			return posts, nil
		}
	}

	posts, err := s.postRepo.List()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPosts(ctx, posts); err != nil {
			log.Printf("post list cache write failed: %v", err)
		}
	}
	return posts, nil
}

func (s *PostService) Create(ctx context.Context, input PostInput, actor string) (*model.Post, error) {
	title, body, err := validatePostInput(input)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().In(s.location),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.publishActivity(ctx, model.ActivityPostCreated, post.ID, actor)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update mutates title and body in place; created_at keeps its original value.
func (s *PostService) Update(ctx context.Context, id uint, input PostInput, actor string) error {
	title, body, err := validatePostInput(input)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.postRepo.UpdateFields(id, title, body); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.publishActivity(ctx, model.ActivityPostUpdated, id, actor)
	return nil
}

func (s *PostService) Delete(ctx context.Context, id uint, actor string) error {
	rows, err := s.postRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	s.invalidateCache(ctx)
	s.publishActivity(ctx, model.ActivityPostDeleted, id, actor)
	return nil
}

func (s *PostService) RecentActivity(limit int) ([]model.Activity, error) {
	return s.activityRepo.ListRecent(limit)
}

func (s *PostService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("post list cache invalidate failed: %v", err)
	}
}

// publishActivity is best-effort: the audit trail never blocks or fails a
// post mutation.
func (s *PostService) publishActivity(ctx context.Context, action string, postID uint, actor string) {
	if s.publisher == nil {
		return
	}
	activity := model.Activity{
		Action:    action,
		PostID:    postID,
		Actor:     actor,
		CreatedAt: time.Now().In(s.location),
	}
	if err := s.publisher.Publish(ctx, activity); err != nil {
		log.Printf("publish %s activity failed: %v", action, err)
	}
}
