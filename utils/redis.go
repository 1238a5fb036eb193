package utils

import "github.com/go-redis/redis/v8"

var redisClient *redis.Client

func SetRedis(client *redis.Client) {
	redisClient = client
}

// GetRedis возвращает глобальный клиент Redis; в тестах может быть nil,
// вызывающий код обязан это учитывать
func GetRedis() *redis.Client {
	return redisClient
}
