package webhook

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RetryQueue requeues a failed webhook dispatch, stamping each requeued
// delivery with a next_retry_at header computed from the same backoff
// schedule as the teacher's payment.CalculateNextRetryTime, generalized
// to connector webhook events instead of payment callbacks: 1 min,
// 5 min, 15 min, 1 hour, 6 hours, then 24 hours thereafter. Consume
// does not wait for next_retry_at; it hands each delivery to its
// handler as soon as it arrives. A delivery that exhausts maxRetries is
// published to the dead-letter queue instead of being requeued.
//
// Grounded on the teacher's pkg/broker/rabbitmq.RabbitMQ wrapper, with
// the package-level panic-on-connect-failure replaced by explicit
// error returns, since this queue is opened during ordinary request
// processing, not only at process startup.
type RetryQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel

	queueName    string
	deadLetterQN string
}

const (
	retryExchange     = "webhook.retry"
	retryQueueName    = "webhook.retry.pending"
	deadLetterQueueName = "webhook.retry.dead"
)

// NewRetryQueue dials url and declares the retry and dead-letter
// queues, idempotently.
func NewRetryQueue(url string) (*RetryQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("webhook retry queue: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("webhook retry queue: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(retryExchange, "direct", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("webhook retry queue: declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(retryQueueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("webhook retry queue: declare queue: %w", err)
	}
	if _, err := ch.QueueDeclare(deadLetterQueueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("webhook retry queue: declare dead letter queue: %w", err)
	}
	if err := ch.QueueBind(retryQueueName, retryQueueName, retryExchange, false, nil); err != nil {
		return nil, fmt.Errorf("webhook retry queue: bind queue: %w", err)
	}

	return &RetryQueue{
		conn:         conn,
		channel:      ch,
		queueName:    retryQueueName,
		deadLetterQN: deadLetterQueueName,
	}, nil
}

// CalculateNextRetryTime returns the time of the next attempt (now plus
// the scheduled delay) for a delivery that has already failed
// retryCount times.
func CalculateNextRetryTime(retryCount int) time.Time {
	var delay time.Duration
	switch retryCount {
	case 0:
		delay = time.Minute
	case 1:
		delay = 5 * time.Minute
	case 2:
		delay = 15 * time.Minute
	case 3:
		delay = time.Hour
	case 4:
		delay = 6 * time.Hour
	default:
		delay = 24 * time.Hour
	}
	return time.Now().Add(delay)
}

// Enqueue publishes a failed delivery for later redelivery, or to the
// dead-letter queue if retryCount has reached maxRetries.
func (q *RetryQueue) Enqueue(ctx context.Context, connectorID, eventID string, payload []byte, retryCount, maxRetries int) error {
	target := q.queueName
	headers := amqp.Table{
		"connector_id": connectorID,
		"event_id":     eventID,
		"retry_count":  retryCount,
	}

	if retryCount >= maxRetries {
		target = q.deadLetterQN
	} else {
		headers["next_retry_at"] = CalculateNextRetryTime(retryCount).Format(time.RFC3339)
	}

	return q.channel.PublishWithContext(ctx, "", target, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
		Headers:     headers,
		Timestamp:   time.Now(),
	})
}

// Consume starts delivering queued retries to handler until ctx is
// canceled. Every delivery is acked whether or not handler returns an
// error; requeuing with an incremented retry count is left to handler
// (Dispatcher.ProcessRetry does it through Enqueue).
func (q *RetryQueue) Consume(ctx context.Context, handler func(ctx context.Context, connectorID, eventID string, payload []byte, retryCount int) error) error {
	deliveries, err := q.channel.ConsumeWithContext(ctx, q.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("webhook retry queue: consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			connectorID, _ := d.Headers["connector_id"].(string)
			eventID, _ := d.Headers["event_id"].(string)
			retryCount, _ := d.Headers["retry_count"].(int32)

			if err := handler(ctx, connectorID, eventID, d.Body, int(retryCount)); err != nil {
				d.Ack(false)
				continue
			}
			d.Ack(false)
		}
	}
}

// Close closes the channel and connection.
func (q *RetryQueue) Close() error {
	if err := q.channel.Close(); err != nil {
		return err
	}
	return q.conn.Close()
}
