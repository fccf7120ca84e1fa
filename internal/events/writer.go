package events

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

const (
	PostCreated     = "post.created"
	PostPublished   = "post.published"
	PostLiked       = "post.liked"
	PostCommented   = "post.commented"
	ProfileFollowed = "profile.followed"
)

type Event struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

type Writer interface {
	Publish(ctx context.Context, kind string, data any)
	Close() error
}

type writer struct {
	w *kgo.Writer
}

func NewWriter(bootstrapServers, topic string) Writer {
	addr := strings.TrimSpace(bootstrapServers)
	if addr == "" {
		addr = "kafka:9092"
	}
	w := &kgo.Writer{
		Addr:         kgo.TCP(strings.Split(addr, ",")...),
		Topic:        topic,
		Balancer:     &kgo.LeastBytes{},
		RequiredAcks: kgo.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &writer{w: w}
}

// Publish is fire-and-forget: event loss is acceptable, request failure
// because of the broker is not.
func (wr *writer) Publish(ctx context.Context, kind string, data any) {
	b, err := json.Marshal(Event{Kind: kind, At: time.Now(), Data: data})
	if err != nil {
		log.Printf("events: marshal %s: %v", kind, err)
		return
	}
	msg := kgo.Message{Key: []byte(kind), Value: b, Time: time.Now()}
	if err := wr.w.WriteMessages(ctx, msg); err != nil {
		log.Printf("events: publish %s: %v", kind, err)
	}
}

func (wr *writer) Close() error { return wr.w.Close() }

// Nop is used where no broker is configured (tests, seeder).
type Nop struct{}

func (Nop) Publish(context.Context, string, any) {}
func (Nop) Close() error                         { return nil }
