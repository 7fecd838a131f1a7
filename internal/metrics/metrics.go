// Package metrics содержит прометей-метрики приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PlansGenerated считает сгенерированные недельные планы питания
// по этапу и категории питания.
var PlansGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "matricare_plans_generated_total",
	Help: "Number of weekly nutrition plans generated.",
}, []string{"stage", "diet_category"})

// PaymentsVerified считает исходы проверки платежей.
var PaymentsVerified = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "matricare_payments_verified_total",
	Help: "Number of payment verification attempts by result.",
}, []string{"result"})
