package relay

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/voidrp/community-backend/internal/config"
)

// VerificationRequest asks the chat-bot process to confirm an account link
// with the targeted chat user. The bot answers through the HTTP confirm
// endpoint once the user reacts.
type VerificationRequest struct {
	SyncToken   string    `json:"sync_token"`
	DiscordID   string    `json:"discord_id"`
	PlayerName  string    `json:"player_name"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher forwards verification requests to the chat-bot integration.
type Publisher interface {
	PublishVerification(ctx context.Context, req VerificationRequest) error
	Close()
}

// AMQPPublisher publishes onto a durable queue consumed by the bot process.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// NewAMQPPublisher dials the broker and declares the relay queue.
func NewAMQPPublisher(cfg config.RelayConfig, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// durable so requests survive broker restarts
	if _, err := channel.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, err
	}

	logger.Info("connected to relay broker", zap.String("queue", cfg.Queue))
	return &AMQPPublisher{conn: conn, channel: channel, queue: cfg.Queue, logger: logger}, nil
}

// PublishVerification enqueues a verification request for the bot.
func (p *AMQPPublisher) PublishVerification(ctx context.Context, req VerificationRequest) error {
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
