package broadcaster

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"lob/infra/outbox"
)

const drainInterval = 250 * time.Millisecond

// Broadcaster drains the execution outbox and publishes each record to
// Kafka. Records move NEW -> SENT -> ACKED; a failed send leaves the
// record behind for the next tick, so delivery is at-least-once.
type Broadcaster struct {
	log      *zap.Logger
	journal  *outbox.Outbox
	producer sarama.SyncProducer
	topic    string
}

func New(log *zap.Logger, journal *outbox.Outbox, brokers []string, topic string) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		log:      log,
		journal:  journal,
		producer: producer,
		topic:    topic,
	}, nil
}

// Start launches the drain loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (b *Broadcaster) Start(ctx context.Context) {
	b.log.Info("broadcaster started", zap.String("topic", b.topic))

	go func() {
		ticker := time.NewTicker(drainInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.drainOnce()
				b.retryOnce()
			}
		}
	}()
}

// drainOnce walks NEW records in sequence order and pushes each one out.
func (b *Broadcaster) drainOnce() {
	_ = b.journal.ScanByState(outbox.StateNew, func(rec outbox.Record) error {
		b.publish(rec)
		return nil
	})
}

// retryOnce re-sends records that were marked SENT but never acked,
// typically because the process died between send and ack. Publishing
// them again may duplicate an event downstream; consumers dedupe on Seq.
func (b *Broadcaster) retryOnce() {
	_ = b.journal.ScanByState(outbox.StateSent, func(rec outbox.Record) error {
		if time.Since(time.Unix(0, rec.LastAttempt)) < time.Second {
			return nil
		}
		b.publish(rec)
		return nil
	})
}

func (b *Broadcaster) publish(rec outbox.Record) {
	if err := b.journal.UpdateState(rec.Seq, outbox.StateSent, rec.Retries+1); err != nil {
		b.log.Warn("outbox mark sent failed", zap.Uint64("seq", rec.Seq), zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: b.topic,
		Value: sarama.ByteEncoder(rec.Payload),
	}
	if _, _, err := b.producer.SendMessage(msg); err != nil {
		b.log.Warn("publish failed, will retry", zap.Uint64("seq", rec.Seq), zap.Error(err))
		return
	}

	if err := b.journal.UpdateState(rec.Seq, outbox.StateAcked, rec.Retries+1); err != nil {
		b.log.Warn("outbox mark acked failed", zap.Uint64("seq", rec.Seq), zap.Error(err))
		return
	}
	_ = b.journal.Delete(rec.Seq)
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
