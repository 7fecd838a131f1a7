package support

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matricare/matricare-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSupportMessage(ctx context.Context, msg models.SupportMessage) (int, error) {
	args := m.Called(ctx, msg)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetSupportMessage(ctx context.Context, id int) (*models.SupportMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SupportMessage), args.Error(1)
}

func (m *RepoMock) ListSupportMessages(ctx context.Context, authorUsername string, limit, offset int) ([]*models.SupportMessage, error) {
	args := m.Called(ctx, authorUsername, limit, offset)
	return args.Get(0).([]*models.SupportMessage), args.Error(1)
}

func (m *RepoMock) ReplySupportMessage(ctx context.Context, id int, authorUsername, content string) (int, error) {
	args := m.Called(ctx, id, authorUsername, content)
	return args.Int(0), args.Error(1)
}

type UsersMock struct{ mock.Mock }

func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newService(repo *RepoMock, users *UsersMock, pub *PublisherMock) *SupportService {
	return New(repo, users, pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		content string
		wantErr error
	}{
		{name: "обращение создается в статусе open", subject: "Вопрос", content: "Как изменить тариф?"},
		{name: "тема из пробелов", subject: "   ", content: "text", wantErr: ErrEmptyContent},
		{name: "текст из пробелов", subject: "Вопрос", content: " \t\n ", wantErr: ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.wantErr == nil {
				repo.On("CreateSupportMessage", mock.Anything, mock.MatchedBy(func(m models.SupportMessage) bool {
					return m.Status == models.SupportOpen && m.AuthorUsername == "priya"
				})).Return(3, nil)
			}

			svc := newService(repo, new(UsersMock), new(PublisherMock))
			id, err := svc.Create(context.Background(), "priya", tt.subject, tt.content)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "CreateSupportMessage", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, id)
		})
	}
}

func TestListForRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantAuthor string
	}{
		{"пользователь видит только свои", models.RoleUser, "priya"},
		{"эксперт видит все", models.RoleExpert, ""},
		{"админ видит все", models.RoleAdmin, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListSupportMessages", mock.Anything, tt.wantAuthor, 20, 0).Return([]*models.SupportMessage{}, nil)

			svc := newService(repo, new(UsersMock), new(PublisherMock))
			_, err := svc.ListForRole(context.Background(), "priya", tt.role, 20, 0)
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestReply(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSupportMessage", mock.Anything, 3).Return(&models.SupportMessage{
		ID: 3, AuthorUsername: "priya", Subject: "Вопрос", Status: models.SupportOpen,
	}, nil)
	repo.On("ReplySupportMessage", mock.Anything, 3, "dr-rao", "Ответ готов").Return(1, nil)

	users := new(UsersMock)
	users.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
		Username: "priya", Email: "priya@example.com",
	}, nil)

	pub := new(PublisherMock)
	pub.On("Publish", "support", models.SupportNotice{
		Email: "priya@example.com", Username: "priya", Subject: "Вопрос",
	}).Return(nil)

	svc := newService(repo, users, pub)
	require.NoError(t, svc.Reply(context.Background(), 3, "dr-rao", "Ответ готов"))
	pub.AssertExpectations(t)
}

func TestReply_AlreadyReplied(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSupportMessage", mock.Anything, 3).Return(&models.SupportMessage{
		ID: 3, Status: models.SupportReplied,
	}, nil)

	svc := newService(repo, new(UsersMock), new(PublisherMock))
	err := svc.Reply(context.Background(), 3, "dr-rao", "Ещё раз")
	assert.ErrorIs(t, err, ErrAlreadyReplied)
	repo.AssertNotCalled(t, "ReplySupportMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReply_EmptyContent(t *testing.T) {
	svc := newService(new(RepoMock), new(UsersMock), new(PublisherMock))
	err := svc.Reply(context.Background(), 3, "dr-rao", "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}
