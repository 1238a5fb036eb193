package utils

import (
	"math"
	"strings"
	"time"
)

// ValidBudget проверяет, что бюджет конечный и строго положительный
func ValidBudget(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// ValidTravelers проверяет количество путешественников (1-50)
func ValidTravelers(n int) bool {
	return n >= 1 && n <= 50
}

// NormalizeAlertType приводит тип алерта к нижнему регистру,
// возвращает пустую строку для недопустимых значений
func NormalizeAlertType(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "avia" || v == "hotel" {
		return v
	}
	return ""
}

// tripDateFormats - поддерживаемые форматы дат поездок
var tripDateFormats = []string{
	"2006-01-02", // YYYY-MM-DD
	"2006/01/02", // YYYY/MM/DD
	"02-01-2006", // DD-MM-YYYY
	"02/01/2006", // DD/MM/YYYY
}

// ParseTripDate парсит дату поездки, пробуя поддерживаемые форматы
func ParseTripDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range tripDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
