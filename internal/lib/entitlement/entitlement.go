// Package entitlement содержит единственный предикат доступа к премиум-функциям.
//
// Проверка тарифа и статуса подписки должна выполняться только здесь:
// дублирование этого выражения в обработчиках приводит к расхождению правил.
package entitlement

// Статусы и тарифы подписки, известные предикату.
const (
	StatusActive = "active"

	PlanBasic       = "basic"
	PlanPremium     = "premium"
	PlanSpecialized = "specialized"
)

// IsEntitled возвращает true, только если статус подписки active
// и тариф входит в закрытое множество {premium, specialized}.
// Любое другое сочетание, включая неизвестный тариф, закрывает доступ.
func IsEntitled(subscriptionStatus, subscriptionPlan string) bool {
	if subscriptionStatus != StatusActive {
		return false
	}
	return subscriptionPlan == PlanPremium || subscriptionPlan == PlanSpecialized
}

// IsKnownPlan сообщает, входит ли тариф в закрытое множество тарифов.
func IsKnownPlan(plan string) bool {
	switch plan {
	case PlanBasic, PlanPremium, PlanSpecialized:
		return true
	}
	return false
}
