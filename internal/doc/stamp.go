package doc

import "fmt"

// Stamp — отметка времени в миллисекундах от начала трека.
// Нулевое значение означает "не задано".
type Stamp struct {
	Millis uint32
	Valid  bool
}

// At returns a valid stamp at the given millisecond offset.
func At(ms uint32) Stamp {
	return Stamp{Millis: ms, Valid: true}
}

// Before reports whether s is strictly before other. Невалидные
// отметки ни до, ни после — сравнение имеет смысл только для заданных.
func (s Stamp) Before(other Stamp) bool {
	return s.Valid && other.Valid && s.Millis < other.Millis
}

func (s Stamp) String() string {
	if !s.Valid {
		return "-"
	}
	return fmt.Sprintf("%dms", s.Millis)
}
