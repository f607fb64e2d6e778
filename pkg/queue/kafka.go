package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher emits domain events. Publishing is best effort everywhere in
// the services: failures are logged by the caller and never fail the
// request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, key string, event Event) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
		Async:    false,
	}

	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	return p.writer.WriteMessages(ctx, message)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured and by
// the test suites.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, event Event) error { return nil }
func (NopPublisher) Close() error                                               { return nil }

type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventProfileUpdated EventType = "profile_updated"
	EventFollowCreated  EventType = "follow_created"
	EventFollowDeleted  EventType = "follow_deleted"
	EventVideoUploaded  EventType = "video_uploaded"
	EventVideoAdded     EventType = "video_added"
	EventLikeCreated    EventType = "like_created"
	EventCommentCreated EventType = "comment_created"
)

type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType EventType, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type FollowEventData struct {
	Username string `json:"username"`
	Target   string `json:"target"`
}

type VideoEventData struct {
	Username string `json:"username"`
	VideoID  string `json:"video_id,omitempty"`
	URL      string `json:"url"`
}

type EngagementEventData struct {
	VideoID  string `json:"video_id"`
	Username string `json:"username"`
}
