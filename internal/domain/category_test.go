package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyReason(t *testing.T) {
	tests := []struct {
		name     string
		reason   string
		expected ExceptionCategory
	}{
		{"english lunch", "Lunch break with the team", CategoryLunch},
		{"portuguese lunch", "Almoço", CategoryLunch},
		{"portuguese lunch unaccented", "horario de almoco", CategoryLunch},
		{"break", "Coffee break", CategoryBreak},
		{"portuguese break", "Pausa para descanso", CategoryBreak},
		{"meeting", "Weekly team meeting", CategoryMeeting},
		{"portuguese meeting", "Reunião com fornecedor", CategoryMeeting},
		{"emergency", "Family emergency", CategoryEmergency},
		{"portuguese emergency", "Emergência médica", CategoryEmergency},
		{"unmatched", "Dentist appointment", CategoryOther},
		{"empty", "", CategoryOther},
		{"case insensitive", "LUNCH TIME", CategoryLunch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyReason(tt.reason))
		})
	}
}

// Lunch имеет приоритет над break при совпадении обоих ключевых слов
func TestClassifyReason_PriorityOrder(t *testing.T) {
	assert.Equal(t, CategoryLunch, ClassifyReason("lunch break"))
	assert.Equal(t, CategoryBreak, ClassifyReason("break before meeting"))
}

// Классификация - чистая функция: повторный вызов дает тот же результат
func TestClassifyReason_Deterministic(t *testing.T) {
	for _, reason := range []string{"Almoço", "random text", "Meeting", ""} {
		first := ClassifyReason(reason)
		second := ClassifyReason(reason)
		assert.Equal(t, first, second, reason)
	}
}

// Классификатор никогда не возвращает wildcard
func TestClassifyReason_NeverReturnsAny(t *testing.T) {
	for _, reason := range []string{"any", "anything goes", "Any reason"} {
		assert.NotEqual(t, CategoryAny, ClassifyReason(reason))
	}
}

func TestIsValidRuleCategory(t *testing.T) {
	assert.True(t, CategoryLunch.IsValidRuleCategory())
	assert.True(t, CategoryAny.IsValidRuleCategory())
	assert.False(t, ExceptionCategory("party").IsValidRuleCategory())
}
