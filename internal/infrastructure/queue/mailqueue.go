package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/PierreClouet/WorkEat/internal/api/metrics"
	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// MailQueue delivers welcome emails asynchronously through a fixed set of
// workers, sharded by recipient. Delivery is best-effort: failures are
// logged and never surfaced to the request that queued the message.
type MailQueue struct {
	workers []chan ports.WelcomeEmail
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewMailQueue creates a MailQueue with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailQueue(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailQueue {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	q := &MailQueue{
		workers: make([]chan ports.WelcomeEmail, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range q.workers {
		q.workers[i] = make(chan ports.WelcomeEmail, channelBuffer)
	}
	return q
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (q *MailQueue) Start(ctx context.Context) {
	for i, ch := range q.workers {
		go q.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (q *MailQueue) Enqueue(msg ports.WelcomeEmail) {
	i := q.shardIndex(msg.To)
	q.workers[i] <- msg
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(q.workers[i])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (q *MailQueue) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(q.workers)
}

func (q *MailQueue) runWorker(ctx context.Context, id int, ch <-chan ports.WelcomeEmail) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := q.mailer.SendWelcome(ctx, msg); err != nil {
				metrics.WelcomeEmailsTotal.WithLabelValues("error").Inc()
				q.log.Error().Err(err).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("welcome email delivery failed")
				continue
			}
			metrics.WelcomeEmailsTotal.WithLabelValues("sent").Inc()
			q.log.Info().Str("to", msg.To).Msg("welcome email sent")
		}
	}
}
