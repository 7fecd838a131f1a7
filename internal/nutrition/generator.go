// Package nutrition реализует генератор недельного плана питания.
//
// Генерация — чистая функция от пары (этап, тип питания) и статических
// таблиц шаблонов: никакого состояния, персистентности и случайности.
// Детерминизм несущий: повторная генерация того же плана обязана давать
// байт-в-байт одинаковый результат.
package nutrition

import (
	"strings"

	"github.com/matricare/matricare-backend/internal/models"
)

// DietCategory отображает произвольную строку предпочтения питания
// на одну из авторских категорий шаблонов. Неизвестные значения,
// включая vegan, сводятся к вегетарианской категории.
func DietCategory(dietType string) string {
	d := strings.ToLower(dietType)
	switch {
	case strings.Contains(d, "non"):
		return CategoryNonVegetarian
	case strings.Contains(d, "keto"):
		return CategoryKeto
	default:
		return CategoryVegetarian
	}
}

// StageCategory сводит этап к одной из трех корзин добавок.
func StageCategory(stage string) string {
	switch stage {
	case models.StagePregnancy:
		return models.StagePregnancy
	case models.StagePostpartum:
		return models.StagePostpartum
	default:
		return models.StageChildhood
	}
}

// templatesFor возвращает таблицу блюд для слота и категории.
// Пустая таблица подменяется вегетарианской — страховка на случай,
// если правку шаблонов не доведут до конца.
func templatesFor(slot, category string) []string {
	table := mealTemplates[slot][category]
	if len(table) == 0 {
		return mealTemplates[slot][CategoryVegetarian]
	}
	return table
}

// pick выбирает блюдо для дня с нулевым индексом i ротацией по таблице.
func pick(slot, category string, i int) string {
	table := templatesFor(slot, category)
	return table[i%len(table)]
}

// Supplements возвращает фиксированный список добавок для этапа.
func Supplements(stage string) []string {
	switch StageCategory(stage) {
	case models.StagePregnancy:
		return supplementsPregnancy
	case models.StagePostpartum:
		return supplementsPostpartum
	default:
		return supplementsDefault
	}
}

// GenerateWeeklyPlan строит недельный план для пары (этап, тип питания).
// Дни нумеруются с 1 по 7; блюдо дня i выбирается как
// templates[slot][category][(i-1) mod len].
func GenerateWeeklyPlan(stage, dietType string) models.WeeklyPlan {
	category := DietCategory(dietType)

	days := make([]models.DailyPlan, 0, 7)
	for i := range 7 {
		days = append(days, models.DailyPlan{
			Day:             i + 1,
			Breakfast:       pick(SlotBreakfast, category, i),
			MidMorningSnack: pick(SlotMidMorningSnack, category, i),
			Lunch:           pick(SlotLunch, category, i),
			EveningSnack:    pick(SlotEveningSnack, category, i),
			Dinner:          pick(SlotDinner, category, i),
		})
	}

	return models.WeeklyPlan{
		DietType:    dietType,
		Stage:       stage,
		Days:        days,
		Supplements: Supplements(stage),
	}
}
