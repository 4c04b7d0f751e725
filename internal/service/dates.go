package service

import (
	"strings"
	"time"
)

// Формат дат протокола: UTC с микросекундами и литеральной Z.
const wireDateLayout = "2006-01-02T15:04:05.000000Z"

// FormatDate приводит время к формату протокола.
func FormatDate(t time.Time) string {
	return t.UTC().Format(wireDateLayout)
}

// ParseDate разбирает дату из запроса клиента. Клиенты присылают
// ISO-8601-подобные строки с разной точностью долей секунды.
func ParseDate(s string) (time.Time, error) {
	layouts := []string{
		wireDateLayout,
		"2006-01-02T15:04:05Z",
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	// точность долей секунды бывает произвольной — пробуем без них
	if i := strings.IndexByte(s, '.'); i >= 0 && strings.HasSuffix(s, "Z") {
		if t, err := time.Parse("2006-01-02T15:04:05Z", s[:i]+"Z"); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, firstErr
}
