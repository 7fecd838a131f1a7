// Package nutrition содержит бизнес-логику выдачи планов питания.
//
// Генерация детерминирована, поэтому кеш в redis — чистая мемоизация:
// повторная генерация дала бы тот же план.
package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/matricare/matricare-backend/internal/metrics"
	"github.com/matricare/matricare-backend/internal/models"
	"github.com/matricare/matricare-backend/internal/nutrition"
)

// UserRepository определяет доступ к профилю пользователя.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// NutritionService выдает недельные планы питания с кешированием.
type NutritionService struct {
	users UserRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр NutritionService.
func New(users UserRepository, cache Cache, log *slog.Logger) *NutritionService {
	return &NutritionService{
		users: users,
		cache: cache,
		log:   log,
	}
}

// GetPlan возвращает недельный план для пары (этап, тип питания),
// используя кеш или генератор. Ключ кеша строится по исходной паре,
// а не по категориям: план хранит исходные значения, и две разные
// пары одной категории не должны делить запись.
func (s *NutritionService) GetPlan(ctx context.Context, stage, dietType string) (*models.WeeklyPlan, error) {
	cacheKey := fmt.Sprintf("plan:%s:%s", stage, dietType)

	var cached models.WeeklyPlan
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	plan := nutrition.GenerateWeeklyPlan(stage, dietType)
	metrics.PlansGenerated.WithLabelValues(nutrition.StageCategory(stage), nutrition.DietCategory(dietType)).Inc()

	if err := s.cache.Set(ctx, cacheKey, plan, 24*time.Hour); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return &plan, nil
}

// WeeklyPlanForUser возвращает полный недельный план по профилю пользователя.
// Отсутствующий пользователь закрывает доступ, а не дает пустой план.
func (s *NutritionService) WeeklyPlanForUser(ctx context.Context, username string) (*models.WeeklyPlan, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.GetPlan(ctx, user.LifeStage, user.DietType)
}

// PreviewForUser возвращает только первый день плана —
// доступно без премиум-подписки.
func (s *NutritionService) PreviewForUser(ctx context.Context, username string) (*models.WeeklyPlan, error) {
	plan, err := s.WeeklyPlanForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	preview := *plan
	preview.Days = plan.Days[:1]
	return &preview, nil
}
