// Package forum содержит бизнес-логику сообщества: посты, комментарии
// и модерация видимости.
package forum

import (
	"context"
	"errors"
	"strings"

	"github.com/matricare/matricare-backend/internal/models"
)

// DefaultCategory присваивается постам без явной категории.
const DefaultCategory = "General"

var (
	// ErrEmptyContent возвращается при попытке опубликовать пустой текст.
	ErrEmptyContent = errors.New("content must not be empty")

	// ErrNotFound возвращается, когда пост не существует.
	ErrNotFound = errors.New("post not found")
)

// ForumRepository описывает контракт хранилища форума.
type ForumRepository interface {
	CreatePost(ctx context.Context, post models.ForumPost) (int, error)
	GetPost(ctx context.Context, id int) (*models.ForumPost, error)
	ListPosts(ctx context.Context, includeHidden bool, limit, offset int) ([]*models.ForumPost, error)
	SetPostHidden(ctx context.Context, id int, hidden bool) (int, error)
	CreateComment(ctx context.Context, comment models.ForumComment) (int, error)
	ListComments(ctx context.Context, postID int) ([]*models.ForumComment, error)
}

// ForumService реализует операции сообщества.
type ForumService struct {
	repo ForumRepository
}

// New создает новый экземпляр ForumService.
func New(repo ForumRepository) *ForumService {
	return &ForumService{repo: repo}
}

// CreatePost сохраняет пост. Пустая категория заменяется на DefaultCategory.
func (s *ForumService) CreatePost(ctx context.Context, authorUsername, title, content, category string) (int, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}
	return s.repo.CreatePost(ctx, models.ForumPost{
		AuthorUsername: authorUsername,
		Title:          title,
		Content:        content,
		Category:       category,
	})
}

// ListPosts возвращает страницу постов. Скрытые посты видят только админы.
func (s *ForumService) ListPosts(ctx context.Context, role string, limit, offset int) ([]*models.ForumPost, error) {
	includeHidden := role == models.RoleAdmin
	return s.repo.ListPosts(ctx, includeHidden, limit, offset)
}

// SetPostHidden переключает видимость поста. Роль проверяется на уровне маршрута.
func (s *ForumService) SetPostHidden(ctx context.Context, id int, hidden bool) error {
	if _, err := s.repo.GetPost(ctx, id); err != nil {
		return ErrNotFound
	}
	affected, err := s.repo.SetPostHidden(ctx, id, hidden)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateComment добавляет комментарий к существующему посту.
func (s *ForumService) CreateComment(ctx context.Context, postID int, authorUsername, content string) (int, error) {
	if strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}
	if _, err := s.repo.GetPost(ctx, postID); err != nil {
		return 0, ErrNotFound
	}
	return s.repo.CreateComment(ctx, models.ForumComment{
		PostID:         postID,
		AuthorUsername: authorUsername,
		Content:        content,
	})
}

// ListComments возвращает комментарии поста в хронологическом порядке.
func (s *ForumService) ListComments(ctx context.Context, postID int) ([]*models.ForumComment, error) {
	return s.repo.ListComments(ctx, postID)
}
