package messaging

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var producerTracer = otel.Tracer("storefront/messaging/producer")

type Producer struct {
	writer *kafka.Writer
	topic  string
	logger *log.Logger
}

type ProducerOption func(*Producer)

// WithAsync makes Publish return once the message is queued. Delivery errors
// are logged by the writer's completion callback.
func WithAsync() ProducerOption {
	return func(p *Producer) {
		p.writer.Async = true
		p.writer.Completion = func(msgs []kafka.Message, err error) {
			if err != nil {
				p.logger.Printf("messaging: deliver %d message(s) to %s: %v", len(msgs), p.topic, err)
			}
		}
	}
}

func NewProducer(brokers []string, topic string, logger *log.Logger, opts ...ProducerOption) *Producer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	p := &Producer{
		topic:  topic,
		logger: logger,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish encodes event as JSON and writes it keyed by key, carrying the
// caller's trace context in the message headers.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	ctx, span := producerTracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
