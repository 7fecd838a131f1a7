package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEntitled(t *testing.T) {
	tests := []struct {
		name   string
		status string
		plan   string
		want   bool
	}{
		{"активный premium", "active", "premium", true},
		{"активный specialized", "active", "specialized", true},
		{"активный basic не дает доступа", "active", "basic", false},
		{"неактивный premium", "inactive", "premium", false},
		{"неактивный specialized", "inactive", "specialized", false},
		{"пустой статус", "", "premium", false},
		{"пустой тариф", "active", "", false},
		{"неизвестный тариф закрывает доступ", "active", "platinum", false},
		{"регистр статуса учитывается", "Active", "premium", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEntitled(tt.status, tt.plan))
		})
	}
}

func TestIsKnownPlan(t *testing.T) {
	assert.True(t, IsKnownPlan("basic"))
	assert.True(t, IsKnownPlan("premium"))
	assert.True(t, IsKnownPlan("specialized"))
	assert.False(t, IsKnownPlan(""))
	assert.False(t, IsKnownPlan("platinum"))
}
