package utils

import "time"

var tashkent *time.Location

func init() {
	tashkent, _ = time.LoadLocation("Asia/Tashkent")
}

// UzbekTime возвращает текущее время в часовом поясе Узбекистана.
// Все временные метки сервиса (история цен, last_checked) идут через неё.
func UzbekTime() time.Time {
	if tashkent == nil {
		// Узбекистан: UTC+5, без перехода на летнее время
		return time.Now().UTC().Add(5 * time.Hour)
	}
	return time.Now().In(tashkent)
}
