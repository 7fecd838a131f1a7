package models

// Этапы материнства (закрытое множество).
const (
	StagePregnancy  = "pregnancy"
	StagePostpartum = "postpartum"
	StageChildhood  = "childhood"
)

// DailyPlan — меню одного дня недели, пять приёмов пищи.
type DailyPlan struct {
	Day             int    `json:"day"` // Индекс дня, 1..7
	Breakfast       string `json:"breakfast"`
	MidMorningSnack string `json:"mid_morning_snack"`
	Lunch           string `json:"lunch"`
	EveningSnack    string `json:"evening_snack"`
	Dinner          string `json:"dinner"`
}

// WeeklyPlan — недельный план питания для пары (этап, тип питания).
// План детерминирован: одинаковые входы всегда дают одинаковый план.
type WeeklyPlan struct {
	DietType    string      `json:"diet_type"`
	Stage       string      `json:"stage"`
	Days        []DailyPlan `json:"days"`
	Supplements []string    `json:"supplements"`
}
