package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/classroom-extract/internal/dto"
)

// EventCourseSynced is the type of the event emitted after a course commits.
const EventCourseSynced = "course.synced"

// CourseSyncedEvent announces that a course was committed to the mirror.
type CourseSyncedEvent struct {
	Type   string           `json:"type"`
	RunID  string           `json:"run_id"`
	Course dto.CourseReport `json:"course"`
	SentAt time.Time        `json:"sent_at"`
}

// EventPublisher fans course events out to downstream consumers.
type EventPublisher interface {
	CourseSynced(ctx context.Context, runID string, course dto.CourseReport) error
}

type brokerPublisher struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
}

// NewEventPublisher publishes to a Redis channel and a NATS subject derived from
// channelBase. Either broker may be nil.
func NewEventPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string) EventPublisher {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = RedisChannel(channelBase)
		subject = strings.ReplaceAll(channelBase, ":", ".") + "." + EventCourseSynced
	}
	return &brokerPublisher{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
	}
}

// RedisChannel returns the channel course events are published on.
func RedisChannel(channelBase string) string {
	return channelBase + ":" + EventCourseSynced
}

func (p *brokerPublisher) CourseSynced(ctx context.Context, runID string, course dto.CourseReport) error {
	if (p.redis == nil || p.redisChannel == "") && (p.nats == nil || p.natsSubject == "") {
		return nil
	}

	payload, err := json.Marshal(CourseSyncedEvent{
		Type:   EventCourseSynced,
		RunID:  runID,
		Course: course,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if p.redis != nil && p.redisChannel != "" {
		if err := p.redis.Publish(ctx, p.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}
