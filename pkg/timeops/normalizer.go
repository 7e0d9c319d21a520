package timeops

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// RealClock реальные часы для production
type RealClock struct{}

// Now возвращает текущее время
func (RealClock) Now() time.Time {
	return time.Now()
}

// Normalizer переводит моменты времени между операционной зоной сервиса
// и канонической формой обмена (UTC)
//
// Все вычисления "какая сейчас дата" и "к какому дню относится запись"
// выполняются строго в операционной зоне - наивная склейка строк даты
// и времени здесь запрещена
type Normalizer struct {
	loc   *time.Location
	clock Clock
}

// NewNormalizer создает нормализатор для указанной таймзоны
// Если clock == nil, используются реальные часы
func NewNormalizer(timezone string, clock Clock) (*Normalizer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("timeops: failed to load location %q: %w", timezone, err)
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Normalizer{loc: loc, clock: clock}, nil
}

// Location возвращает операционную зону
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Combine собирает абсолютный момент из календарной даты и времени HH:MM
// в операционной зоне
func (n *Normalizer) Combine(date time.Time, t types.TimeString) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, n.loc), nil
}

// ToDisplay нормализует момент в каноническую форму обмена (UTC)
func (n *Normalizer) ToDisplay(t time.Time) time.Time {
	return t.UTC()
}

// DateOnly возвращает дату момента (полночь в операционной зоне)
func (n *Normalizer) DateOnly(t time.Time) time.Time {
	y, m, d := t.In(n.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, n.loc)
}

// TimeOnly возвращает время момента (HH:MM в операционной зоне)
func (n *Normalizer) TimeOnly(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(n.loc))
}

// Today возвращает текущую дату в операционной зоне
func (n *Normalizer) Today() time.Time {
	return n.DateOnly(n.clock.Now())
}

// DayBounds возвращает границы суток [00:00, 23:59:59] для даты
func (n *Normalizer) DayBounds(date time.Time) (time.Time, time.Time) {
	start := n.DateOnly(date)
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

// SameDay проверяет, что два момента относятся к одним суткам операционной зоны
func (n *Normalizer) SameDay(a, b time.Time) bool {
	return n.DateOnly(a).Equal(n.DateOnly(b))
}
