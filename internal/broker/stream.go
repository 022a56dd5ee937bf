package broker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"anima/internal/logger"
	"anima/internal/metrics"
	"anima/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// StreamKey holds every progression event of every user.
	StreamKey    = "anima:progression:events"
	streamMaxLen = 10000
	reclaimIdle  = 30 * time.Second
)

var errNoRedis = errors.New("redis client not available")

// Deliverer hands a consumed event to whatever holds the user's live connections.
type Deliverer interface {
	Deliver(event models.ProgressionEvent)
}

// StreamPublisher appends progression events to the shared Redis stream.
type StreamPublisher struct {
	rdb *redis.Client
}

func NewStreamPublisher(rdb *redis.Client) *StreamPublisher {
	return &StreamPublisher{rdb: rdb}
}

func (p *StreamPublisher) Publish(ctx context.Context, event models.ProgressionEvent) error {
	if p == nil || p.rdb == nil {
		return errNoRedis
	}

	data, err := MarshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		Values: map[string]interface{}{"data": data},
		MaxLen: streamMaxLen,
		Approx: true,
	}).Err()
	metrics.RecordEventPublished(event.Type, err)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// StreamConsumer reads the progression stream and delivers events to local
// WebSocket clients. Each server instance uses its own consumer group so
// every instance sees every event, whichever instance the user is connected to.
type StreamConsumer struct {
	rdb          *redis.Client
	deliverer    Deliverer
	groupName    string
	consumerName string
}

func NewStreamConsumer(rdb *redis.Client, deliverer Deliverer) *StreamConsumer {
	hostname, _ := os.Hostname()
	instanceID := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &StreamConsumer{
		rdb:          rdb,
		deliverer:    deliverer,
		groupName:    "anima:group:" + instanceID,
		consumerName: "consumer-" + instanceID,
	}
}

// Start creates the consumer group and consumes until ctx is cancelled.
// New groups start at "$" so a restarted instance does not replay history.
func (sc *StreamConsumer) Start(ctx context.Context) error {
	if sc == nil || sc.rdb == nil {
		return errNoRedis
	}

	err := sc.rdb.XGroupCreateMkStream(ctx, StreamKey, sc.groupName, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	go sc.consumeLoop(ctx)
	return nil
}

func (sc *StreamConsumer) consumeLoop(ctx context.Context) {
	defer func() {
		// the group is per instance, so it dies with the instance
		cleanup, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		sc.rdb.XGroupDestroy(cleanup, StreamKey, sc.groupName)
	}()

	lastReclaim := time.Now()
	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := sc.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    sc.groupName,
			Consumer: sc.consumerName,
			Streams:  []string{StreamKey, ">"},
			Count:    100,
			Block:    time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			logger.Log.Warn("progression stream read failed", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				sc.handle(ctx, message)
			}
		}

		if time.Since(lastReclaim) > reclaimIdle {
			sc.reclaimPending(ctx)
			lastReclaim = time.Now()
		}
	}
}

func (sc *StreamConsumer) handle(ctx context.Context, message redis.XMessage) {
	if err := sc.processMessage(message); err != nil {
		logger.Log.Warn("dropping malformed progression event",
			zap.String("id", message.ID), zap.Error(err))
	}
	// malformed entries are acked too; they will never parse
	if err := sc.rdb.XAck(ctx, StreamKey, sc.groupName, message.ID).Err(); err != nil {
		logger.Log.Warn("failed to ack progression event", zap.String("id", message.ID), zap.Error(err))
	}
}

func (sc *StreamConsumer) processMessage(message redis.XMessage) error {
	data, ok := message.Values["data"].(string)
	if !ok {
		return fmt.Errorf("invalid message format: missing data field")
	}

	event, err := UnmarshalEvent(data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	sc.deliverer.Deliver(event)
	return nil
}

// reclaimPending re-delivers entries that were read but never acked.
func (sc *StreamConsumer) reclaimPending(ctx context.Context) {
	pending, err := sc.rdb.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: StreamKey,
		Group:  sc.groupName,
		Start:  "-",
		End:    "+",
		Count:  100,
		Idle:   reclaimIdle,
	}).Result()
	if err != nil || len(pending) == 0 {
		return
	}

	ids := make([]string, 0, len(pending))
	for _, p := range pending {
		ids = append(ids, p.ID)
	}
	claimed, err := sc.rdb.XClaim(ctx, &redis.XClaimArgs{
		Stream:   StreamKey,
		Group:    sc.groupName,
		Consumer: sc.consumerName,
		MinIdle:  reclaimIdle,
		Messages: ids,
	}).Result()
	if err != nil {
		return
	}
	for _, msg := range claimed {
		sc.handle(ctx, msg)
	}
}
