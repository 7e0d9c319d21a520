package domain

import "strings"

// ExceptionCategory категория исключения (закрытая таксономия)
type ExceptionCategory string

const (
	CategoryLunch     ExceptionCategory = "lunch"
	CategoryBreak     ExceptionCategory = "break"
	CategoryMeeting   ExceptionCategory = "meeting"
	CategoryEmergency ExceptionCategory = "emergency"
	CategoryOther     ExceptionCategory = "other"

	// CategoryAny wildcard, используется только в правилах лимитов
	// ("лимит на любую категорию"); классификатор ее никогда не возвращает
	CategoryAny ExceptionCategory = "any"
)

// RuleCategories категории, допустимые в правилах лимитов
var RuleCategories = []ExceptionCategory{
	CategoryLunch,
	CategoryBreak,
	CategoryMeeting,
	CategoryEmergency,
	CategoryOther,
	CategoryAny,
}

// IsValidRuleCategory проверяет, что категория допустима в правиле лимита
func (c ExceptionCategory) IsValidRuleCategory() bool {
	for _, v := range RuleCategories {
		if c == v {
			return true
		}
	}
	return false
}

// categoryKeyword пара (подстрока, категория) для классификации причин
type categoryKeyword struct {
	keyword  string
	category ExceptionCategory
}

// categoryKeywords таблица ключевых слов в порядке приоритета
// (lunch > break > meeting > emergency); первое совпадение выигрывает.
// Ключевые слова и английские, и португальские - причины исторически
// вводились на обоих языках
var categoryKeywords = []categoryKeyword{
	{"lunch", CategoryLunch},
	{"almoço", CategoryLunch},
	{"almoco", CategoryLunch},
	{"break", CategoryBreak},
	{"pausa", CategoryBreak},
	{"intervalo", CategoryBreak},
	{"descanso", CategoryBreak},
	{"meeting", CategoryMeeting},
	{"reunião", CategoryMeeting},
	{"reuniao", CategoryMeeting},
	{"emergency", CategoryEmergency},
	{"emergência", CategoryEmergency},
	{"emergencia", CategoryEmergency},
	{"urgência", CategoryEmergency},
	{"urgencia", CategoryEmergency},
}

// ClassifyReason определяет категорию исключения по тексту причины
// Регистронезависимый поиск подстрок по таблице ключевых слов;
// без совпадений возвращается CategoryOther. Чистая тотальная функция
func ClassifyReason(reason string) ExceptionCategory {
	lowered := strings.ToLower(reason)
	for _, kw := range categoryKeywords {
		if strings.Contains(lowered, kw.keyword) {
			return kw.category
		}
	}
	return CategoryOther
}
