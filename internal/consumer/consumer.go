package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/executor"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/messaging"
	"github.com/relay-hub/settlement-hub/internal/metrics"
	"github.com/relay-hub/settlement-hub/internal/oracle"
)

const (
	DEFAULT_SUBJECT           = "actions.>"
	DEFAULT_WORKER_POOL_SIZE  = 16
	DEFAULT_WORKER_QUEUE_SIZE = 256
)

// Config holds the configuration for the action consumer
type Config struct {
	URL             string
	StreamName      string
	ConsumerName    string
	Subject         string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ConnectionName  string
	AckWaitTimeout  time.Duration
	MaxDeliver      int
	WorkerPoolSize  int
	WorkerQueueSize int
}

// Consumer pulls attested actions from JetStream and settles them
type Consumer interface {
	// Run consumes until ctx is cancelled
	Run(ctx context.Context) error
	// Close closes the NATS connection
	Close()
}

type consumer struct {
	nc        adapter.NatsConn
	js        adapter.JetStream
	verifier  oracle.Verifier
	executor  executor.Executor
	publisher messaging.Publisher
	json      adapter.JSON
	config    Config
}

// NewConsumer connects to NATS and creates a new action consumer.
// Applied actions are announced through publisher unless it is nil.
func NewConsumer(
	cfg Config,
	natsJS adapter.NatsJetStream,
	verifier oracle.Verifier,
	exec executor.Executor,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
) (Consumer, error) {
	if cfg.Subject == "" {
		cfg.Subject = DEFAULT_SUBJECT
	}
	if cfg.WorkerPoolSize == 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.WorkerQueueSize == 0 {
		cfg.WorkerQueueSize = DEFAULT_WORKER_QUEUE_SIZE
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &consumer{
		nc:        nc,
		js:        js,
		verifier:  verifier,
		executor:  exec,
		publisher: publisher,
		json:      jsonAdapter,
		config:    cfg,
	}, nil
}

// Run ensures the stream and durable consumer exist, then settles messages on a worker pool
func (c *consumer) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting action consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName),
		zap.String("subject", c.config.Subject))

	if err := c.js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:     c.config.StreamName,
		Subjects: []string{c.config.Subject},
	}); err != nil {
		return fmt.Errorf("failed to create/update stream: %w", err)
	}

	cons, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWaitTimeout,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: c.config.Subject,
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	info, err := cons.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved", zap.String("consumer", info.Name))

	pool := pond.NewPool(
		c.config.WorkerPoolSize,
		pond.WithQueueSize(c.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	sub, err := cons.Consume(func(msg adapter.Message) {
		// A message the stopped pool refuses is neither acked nor naked and comes back after AckWait
		pool.Submit(func() {
			c.handleMessage(ctx, msg)
		})
	})
	if err != nil {
		pool.StopAndWait()
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	logger.InfoCtx(ctx, "Started consuming messages")
	<-ctx.Done()

	logger.InfoCtx(ctx, "Shutting down action consumer",
		zap.Uint64("submitted", pool.SubmittedTasks()),
		zap.Uint64("waiting", pool.WaitingTasks()))
	sub.Stop()
	pool.StopAndWait()

	return ctx.Err()
}

// handleMessage decodes, verifies and executes one message, then settles its delivery:
// Ack once the action is applied (now or before), Term when it can never apply, Nak otherwise.
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message) {
	metrics.MessagesReceived.WithLabelValues(msg.Subject()).Inc()

	fields := []zap.Field{zap.String("subject", msg.Subject())}
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		fields = append(fields, zap.Uint64("deliveryCount", metadata.NumDelivered))
	}
	ctx = logger.WithFields(ctx, fields...)

	var action domain.AttestedAction
	if err := c.json.Unmarshal(msg.Data(), &action); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal action"))
		settle(ctx, msg, settleTerm)
		return
	}

	messageID, err := c.verifier.Verify(action)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Rejected action attestation"), zap.String("kind", string(action.Kind)))
		settle(ctx, msg, settleTerm)
		return
	}
	ctx = logger.WithFields(ctx, zap.String("messageID", messageID.Hex()))

	result, err := c.executor.Execute(ctx, action)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Rejected malformed action"))
		settle(ctx, msg, settleTerm)
		return
	}

	if !result.Succeeded() {
		settle(ctx, msg, settleNak)
		return
	}

	// Replays are published too so a redelivery after a failed publish still announces the action
	if c.publisher != nil {
		event := domain.SettlementEvent{
			MessageID: messageID.Hex(),
			Kind:      action.Kind,
			Status:    result.Status,
			Details:   result.Details,
		}
		if err := c.publisher.PublishSettlement(ctx, event); err != nil {
			metrics.SettlementsPublished.WithLabelValues("failed").Inc()
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to publish settlement"))
			settle(ctx, msg, settleNak)
			return
		}
		metrics.SettlementsPublished.WithLabelValues("published").Inc()
	}
	settle(ctx, msg, settleAck)
}

type acknowledgement string

const (
	settleAck  acknowledgement = "ack"
	settleNak  acknowledgement = "nak"
	settleTerm acknowledgement = "term"
)

func settle(ctx context.Context, msg adapter.Message, how acknowledgement) {
	var err error
	switch how {
	case settleAck:
		err = msg.Ack()
	case settleNak:
		err = msg.Nak()
	case settleTerm:
		err = msg.Term()
	}
	metrics.MessagesSettled.WithLabelValues(string(how)).Inc()
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to "+string(how)+" message"))
	}
}

// Close closes the consumer and cleans up resources
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}
	c.nc.Close()
}
