package repository

import (
	"context"
	"fmt"

	"github.com/matricare/matricare-backend/internal/models"
)

// CreatePost вставляет новую публикацию форума и возвращает её ID.
func (s *Storage) CreatePost(ctx context.Context, post models.ForumPost) (int, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO forum_posts (author_username, title, content, category, hidden)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		post.AuthorUsername, post.Title, post.Content, post.Category, post.Hidden).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPost возвращает публикацию по её ID.
func (s *Storage) GetPost(ctx context.Context, id int) (*models.ForumPost, error) {
	const op = "storage.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_username, title, content, category, hidden, created_at
			  FROM forum_posts
			  WHERE id = $1`
	var post models.ForumPost
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&post.ID, &post.AuthorUsername, &post.Title, &post.Content,
		&post.Category, &post.Hidden, &post.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &post, nil
}

// ListPosts возвращает публикации по убыванию даты создания.
// Скрытые модерацией записи попадают в выдачу только при includeHidden.
func (s *Storage) ListPosts(ctx context.Context, includeHidden bool, limit, offset int) ([]*models.ForumPost, error) {
	const op = "storage.ListPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_username, title, content, category, hidden, created_at
			  FROM forum_posts
			  WHERE ($1 OR NOT hidden)
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, includeHidden, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ForumPost
	for rows.Next() {
		var post models.ForumPost
		if err := rows.Scan(&post.ID, &post.AuthorUsername, &post.Title, &post.Content,
			&post.Category, &post.Hidden, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SetPostHidden выставляет флаг модерации публикации.
// Возвращает количество изменённых строк.
func (s *Storage) SetPostHidden(ctx context.Context, id int, hidden bool) (int, error) {
	const op = "storage.SetPostHidden"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE forum_posts SET hidden = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, hidden, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CreateComment вставляет комментарий к публикации и возвращает его ID.
func (s *Storage) CreateComment(ctx context.Context, comment models.ForumComment) (int, error) {
	const op = "storage.CreateComment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO forum_comments (post_id, author_username, content)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		comment.PostID, comment.AuthorUsername, comment.Content).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListComments возвращает комментарии публикации по возрастанию даты создания.
func (s *Storage) ListComments(ctx context.Context, postID int) ([]*models.ForumComment, error) {
	const op = "storage.ListComments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, post_id, author_username, content, created_at
			  FROM forum_comments
			  WHERE post_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ForumComment
	for rows.Next() {
		var comment models.ForumComment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorUsername,
			&comment.Content, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
