// Package support содержит бизнес-логику обращений в поддержку
// и ответов на них.
package support

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/matricare/matricare-backend/internal/lib/sl"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/rabbitmq"
)

var (
	// ErrEmptyContent возвращается для обращения или ответа из одних пробелов.
	ErrEmptyContent = errors.New("content must not be empty")

	// ErrAlreadyReplied возвращается при повторном ответе на обращение.
	ErrAlreadyReplied = errors.New("message already replied")

	// ErrNotFound возвращается, когда обращение не существует.
	ErrNotFound = errors.New("support message not found")
)

// SupportRepository описывает контракт хранилища обращений.
type SupportRepository interface {
	CreateSupportMessage(ctx context.Context, msg models.SupportMessage) (int, error)
	GetSupportMessage(ctx context.Context, id int) (*models.SupportMessage, error)
	ListSupportMessages(ctx context.Context, authorUsername string, limit, offset int) ([]*models.SupportMessage, error)
	ReplySupportMessage(ctx context.Context, id int, authorUsername, content string) (int, error)
}

// UserRepository нужен, чтобы найти почту автора обращения для уведомления.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Publisher публикует события в очередь уведомлений.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// SupportService реализует операции поддержки.
type SupportService struct {
	repo      SupportRepository
	users     UserRepository
	publisher Publisher
	log       *slog.Logger
}

// New создает новый экземпляр SupportService.
func New(repo SupportRepository, users UserRepository, publisher Publisher, log *slog.Logger) *SupportService {
	return &SupportService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
	}
}

// Create регистрирует обращение в статусе open.
// Тема и текст из одних пробелов отклоняются.
func (s *SupportService) Create(ctx context.Context, authorUsername, subject, content string) (int, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}
	return s.repo.CreateSupportMessage(ctx, models.SupportMessage{
		AuthorUsername: authorUsername,
		Subject:        subject,
		Content:        content,
		Status:         models.SupportOpen,
	})
}

// ListForRole возвращает обращения: пользователь — только свои,
// эксперт и админ — все.
func (s *SupportService) ListForRole(ctx context.Context, username, role string, limit, offset int) ([]*models.SupportMessage, error) {
	author := username
	if role == models.RoleExpert || role == models.RoleAdmin {
		author = ""
	}
	return s.repo.ListSupportMessages(ctx, author, limit, offset)
}

// Reply записывает единственный ответ на обращение и ставит в очередь
// уведомление автору. Сбой публикации не откатывает ответ.
func (s *SupportService) Reply(ctx context.Context, id int, replyAuthor, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}

	msg, err := s.repo.GetSupportMessage(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if msg.Status == models.SupportReplied {
		return ErrAlreadyReplied
	}

	affected, err := s.repo.ReplySupportMessage(ctx, id, replyAuthor, content)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	author, err := s.users.GetUserByUsername(ctx, msg.AuthorUsername)
	if err != nil {
		s.log.Warn("failed to load support message author for notification", sl.Err(err))
		return nil
	}
	notice := models.SupportNotice{
		Email:    author.Email,
		Username: author.Username,
		Subject:  msg.Subject,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeySupport, notice); err != nil {
		s.log.Warn("failed to publish support notice", sl.Err(err))
	}
	return nil
}
