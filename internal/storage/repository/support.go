package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matricare/matricare-backend/internal/models"
)

// CreateSupportMessage вставляет обращение в поддержку и возвращает его ID.
func (s *Storage) CreateSupportMessage(ctx context.Context, msg models.SupportMessage) (int, error) {
	const op = "storage.CreateSupportMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO support_messages (author_username, subject, content, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		msg.AuthorUsername, msg.Subject, msg.Content, msg.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSupportMessage возвращает обращение по его ID.
func (s *Storage) GetSupportMessage(ctx context.Context, id int) (*models.SupportMessage, error) {
	const op = "storage.GetSupportMessage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_username, subject, content, status,
			      reply_author, reply_content, replied_at, created_at
			  FROM support_messages
			  WHERE id = $1`
	return scanSupportMessage(s.DB.QueryRowContext(ctx, query, id), op)
}

func scanSupportMessage(row *sql.Row, op string) (*models.SupportMessage, error) {
	var m models.SupportMessage
	var replyAuthor, replyContent sql.NullString
	var repliedAt sql.NullTime
	if err := row.Scan(&m.ID, &m.AuthorUsername, &m.Subject, &m.Content, &m.Status,
		&replyAuthor, &replyContent, &repliedAt, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if replyAuthor.Valid {
		m.Reply = &models.SupportReply{
			AuthorUsername: replyAuthor.String,
			Content:        replyContent.String,
			RepliedAt:      repliedAt.Time,
		}
	}
	return &m, nil
}

// ListSupportMessages возвращает обращения по убыванию даты создания.
// При пустом authorUsername отдаются все обращения (для эксперта и админа).
func (s *Storage) ListSupportMessages(ctx context.Context, authorUsername string, limit, offset int) ([]*models.SupportMessage, error) {
	const op = "storage.ListSupportMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, author_username, subject, content, status,
			      reply_author, reply_content, replied_at, created_at
			  FROM support_messages
			  WHERE ($1 = '' OR author_username = $1)
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, authorUsername, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SupportMessage
	for rows.Next() {
		var m models.SupportMessage
		var replyAuthor, replyContent sql.NullString
		var repliedAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.AuthorUsername, &m.Subject, &m.Content, &m.Status,
			&replyAuthor, &replyContent, &repliedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if replyAuthor.Valid {
			m.Reply = &models.SupportReply{
				AuthorUsername: replyAuthor.String,
				Content:        replyContent.String,
				RepliedAt:      repliedAt.Time,
			}
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReplySupportMessage записывает единственный ответ на обращение и переводит
// его в статус replied. Возвращает количество изменённых строк.
func (s *Storage) ReplySupportMessage(ctx context.Context, id int, authorUsername, content string) (int, error) {
	const op = "storage.ReplySupportMessage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE support_messages
			  SET status = 'replied',
			      reply_author = $1,
			      reply_content = $2,
			      replied_at = NOW()
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, authorUsername, content, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
