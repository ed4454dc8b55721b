// Package kafka publishes market-data snapshots. Execution events go
// out through the broadcaster and its outbox; depth snapshots are
// fire-and-forget and ship straight from here.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"lob/domain/book"
)

// DepthSnapshot is the wire form of one symbol's depth report.
type DepthSnapshot struct {
	Symbol string       `json:"symbol"`
	Time   int64        `json:"time"`
	Asks   []DepthLevel `json:"asks"`
	Bids   []DepthLevel `json:"bids"`
}

type DepthLevel struct {
	Price  int64 `json:"price"` // scaled by book.PriceScale
	Shares int64 `json:"shares"`
	Orders int   `json:"orders"`
}

// DepthPublisher writes depth snapshots to one Kafka topic, keyed by
// symbol.
type DepthPublisher struct {
	writer *kafka.Writer
}

func NewDepthPublisher(brokers []string, topic string) *DepthPublisher {
	return &DepthPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Publish ships one snapshot. Levels arrive ask side first, both sides
// in ascending price order, same as the console report.
func (p *DepthPublisher) Publish(ctx context.Context, symbol string, asks, bids []book.LevelSummary) error {
	snap := DepthSnapshot{
		Symbol: symbol,
		Time:   time.Now().UnixNano(),
		Asks:   toWire(asks),
		Bids:   toWire(bids),
	}
	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(symbol),
		Value: value,
	})
}

func (p *DepthPublisher) Close() error {
	return p.writer.Close()
}

func toWire(levels []book.LevelSummary) []DepthLevel {
	out := make([]DepthLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, DepthLevel{Price: l.Price, Shares: l.Shares, Orders: l.Orders})
	}
	return out
}
