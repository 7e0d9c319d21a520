package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Парсер дневных лимитов времени
// Исторически лимиты хранились в двух форматах:
//   - "HH:MM:SS" (формат time-колонки)
//   - свободный текст на английском ("1 hour 30 minutes", "45 minutes")
// Текстовая ветка принимает и компактную форму FormatDurationMinutes
// ("1h30min"), так что выданный сервисом лимит парсится обратно.
// Все форматы нормализуются в целые минуты сразу на границе чтения -
// дальше по коду "сырая" строка не передается

var (
	// ErrInvalidDuration возвращается при нераспознанном формате лимита
	ErrInvalidDuration = errors.New("types: invalid duration format")
)

var (
	clockDurationRe = regexp.MustCompile(`^(\d{1,3}):([0-5]?\d)(?::([0-5]?\d))?$`)

	// Текстовая форма заякорена целиком: строка обязана состоять только
	// из часовой и/или минутной компоненты. Частичное совпадение - ошибка,
	// иначе "1h30min" молча терял бы часы, а мусор вокруг числа - принимался
	freeTextDurationRe = regexp.MustCompile(`^(?:(\d+)\s*(?:hours?|hrs?|h))?[\s,]*(?:(\d+)\s*(?:minutes?|mins?|min|m))?$`)
)

// ParseDurationMinutes парсит лимит в любом из поддерживаемых форматов
// и возвращает количество минут. Секунды clock-формата отбрасываются
func ParseDurationMinutes(raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDuration)
	}

	// Clock-формат: "HH:MM:SS" или "HH:MM"
	if m := clockDurationRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes, nil
	}

	// Свободный текст: "1 hour 30 minutes", "2 hours", "45 min", "1h30min"
	m := freeTextDurationRe.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	total := 0
	if m[1] != "" {
		hours, _ := strconv.Atoi(m[1])
		total += hours * 60
	}
	if m[2] != "" {
		minutes, _ := strconv.Atoi(m[2])
		total += minutes
	}
	return total, nil
}

// FormatDurationMinutes форматирует минуты в читаемую строку ("1h30min", "45min")
func FormatDurationMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dmin", mins)
	}
	return fmt.Sprintf("%dh%02dmin", hours, mins)
}
