// Package profile содержит чтение и обновление профиля пользователя.
package profile

import (
	"context"
	"errors"

	"github.com/matricare/matricare-backend/internal/models"
)

// ErrNotFound возвращается, когда пользователь не существует.
var ErrNotFound = errors.New("user not found")

// UserRepository описывает доступ к профилям пользователей.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username string, upd models.ProfileUpdate) (int, error)
}

// ProfileService реализует операции с профилем.
type ProfileService struct {
	users UserRepository
}

// New создает новый экземпляр ProfileService.
func New(users UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Get возвращает публичное представление профиля без хэша пароля.
func (s *ProfileService) Get(ctx context.Context, username string) (*models.PublicProfile, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrNotFound
	}
	public := user.Public()
	return &public, nil
}

// Update изменяет переданные поля профиля, пустые поля не трогаются.
func (s *ProfileService) Update(ctx context.Context, username string, upd models.ProfileUpdate) (*models.PublicProfile, error) {
	affected, err := s.users.UpdateProfile(ctx, username, upd)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, username)
}
