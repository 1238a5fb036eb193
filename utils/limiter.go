package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CanSendAlertEmail проверяет лимиты отправки писем по ценовым уведомлениям:
// не чаще 1 раза в 60 секунд и не более 10 раз в час на пользователя.
func CanSendAlertEmail(rdb *redis.Client, key string) (bool, string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("alert_email_minute_%s", key)
	hourKey := fmt.Sprintf("alert_email_hour_%s", key)
	if rdb.Exists(ctx, minuteKey).Val() > 0 {
		return false, "Можно отправлять не чаще 1 раза в 60 секунд"
	}
	cnt, _ := rdb.Get(ctx, hourKey).Int()
	if cnt >= 10 {
		return false, "Можно отправлять не более 10 раз в час"
	}
	return true, ""
}

// MarkAlertEmailSent фиксирует отправку письма в минутном и часовом бакетах
func MarkAlertEmailSent(rdb *redis.Client, key string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("alert_email_minute_%s", key)
	hourKey := fmt.Sprintf("alert_email_hour_%s", key)
	rdb.Set(ctx, minuteKey, 1, 60*time.Second)
	rdb.Incr(ctx, hourKey)
	rdb.Expire(ctx, hourKey, time.Hour)
}
