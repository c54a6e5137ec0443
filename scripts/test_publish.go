//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Marker struct {
	ID          int64      `json:"id"`
	Category    string     `json:"category"`
	Coordinate  Coordinate `json:"coordinate"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MarkerEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	Marker     Marker    `json:"marker"`
	OccurredAt time.Time `json:"occurred_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	stream := flag.String("stream", "stream:marker:events", "Stream name")
	eventType := flag.String("type", "marker.confirmed", "marker.confirmed or marker.discarded")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие (центр карты по умолчанию)
	event := MarkerEvent{
		EventID: uuid.New(),
		Type:    *eventType,
		Marker: Marker{
			ID:          1,
			Category:    "checked",
			Coordinate:  Coordinate{X: 4420570.3290049005, Y: 5981353.3434550995},
			Title:       "Test marker",
			Description: "Published by scripts/test_publish.go",
		},
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", *stream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Event ID: %s\n", event.EventID)
	fmt.Printf("   Type: %s\n", event.Type)

	// Длина стрима после публикации
	length, err := client.XLen(ctx, *stream).Result()
	if err == nil {
		fmt.Printf("   Stream length: %d\n", length)
	}
}
