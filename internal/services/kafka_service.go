package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/models"
)

// KafkaService consumes activity-completed events from the volunteering
// subsystem and publishes certificate lifecycle events.
type KafkaService struct {
	reader           *kafka.Reader
	writer           *kafka.Writer
	bootstrapServers string
	consumerGroup    string
	activityTopic    string
	certificateTopic string
}

// NewKafkaService creates a new KafkaService.
func NewKafkaService(bootstrapServers, consumerGroup, activityTopic, certificateTopic string) *KafkaService {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{bootstrapServers},
		Topic:       activityTopic,
		GroupID:     consumerGroup,
		MinBytes:    10e3, // 10KB
		MaxBytes:    10e6, // 10MB
		MaxWait:     1 * time.Second,
		StartOffset: kafka.LastOffset,
	})

	writer := &kafka.Writer{
		Addr:         kafka.TCP(bootstrapServers),
		Topic:        certificateTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}

	return &KafkaService{
		reader:           reader,
		writer:           writer,
		bootstrapServers: bootstrapServers,
		consumerGroup:    consumerGroup,
		activityTopic:    activityTopic,
		certificateTopic: certificateTopic,
	}
}

// ConsumeActivityEvents reads activity-completed events and hands them to
// the handler until the context is cancelled.
func (ks *KafkaService) ConsumeActivityEvents(ctx context.Context, handler func(event *models.ActivityCompletedEvent) error) error {
	log.Printf("🎧 Consuming activity events from topic: %s", ks.activityTopic)

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Stopping activity event consumption")
			return ctx.Err()
		default:
			msg, err := ks.reader.ReadMessage(ctx)
			if err != nil {
				log.Printf("❌ Failed to read Kafka message: %v", err)
				continue
			}

			log.Printf("📨 Message received: partition=%d offset=%d key=%s",
				msg.Partition, msg.Offset, string(msg.Key))

			var event models.ActivityCompletedEvent
			err = json.Unmarshal(msg.Value, &event)
			if err != nil {
				log.Printf("❌ Failed to parse activity event: %v", err)
				continue
			}

			if err := handler(&event); err != nil {
				log.Printf("❌ Failed to process activity for volunteer %s: %v", event.VolunteerID, err)
				// A DLQ would go here in production
				continue
			}

			log.Printf("✅ Activity event processed for volunteer: %s", event.VolunteerID)
		}
	}
}

// PublishCertificateIssued publishes a certificate.issued event.
func (ks *KafkaService) PublishCertificateIssued(ctx context.Context, event *models.CertificateIssuedEvent) error {
	return ks.publishEvent(ctx, "event.certificate.issued", event)
}

// PublishCertificateRejected publishes a certificate.rejected event.
func (ks *KafkaService) PublishCertificateRejected(ctx context.Context, event *models.CertificateRejectedEvent) error {
	return ks.publishEvent(ctx, "event.certificate.rejected", event)
}

// PublishCertificateFailed publishes a certificate.failed event.
func (ks *KafkaService) PublishCertificateFailed(ctx context.Context, event *models.CertificateFailedEvent) error {
	return ks.publishEvent(ctx, "event.certificate.failed", event)
}

// publishEvent publishes a generic lifecycle event.
func (ks *KafkaService) publishEvent(ctx context.Context, eventType string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = ks.writer.WriteMessages(ctx, ks.buildMessage(eventType, eventBytes))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Printf("📤 Event published: type=%s topic=%s", eventType, ks.certificateTopic)
	return nil
}

// buildMessage assembles the Kafka message for one lifecycle event. The topic
// is carried by the writer, so the message must not set one: kafka-go rejects
// a write when both the writer and the message name a topic.
func (ks *KafkaService) buildMessage(eventType string, payload []byte) kafka.Message {
	return kafka.Message{
		Key:   []byte(eventType),
		Value: payload,
		Headers: []kafka.Header{
			{
				Key:   "event-type",
				Value: []byte(eventType),
			},
			{
				Key:   "timestamp",
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}
}

// Close closes the Kafka connections.
func (ks *KafkaService) Close() error {
	var errs []error

	if ks.reader != nil {
		if err := ks.reader.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close reader: %w", err))
		}
	}

	if ks.writer != nil {
		if err := ks.writer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close writer: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close Kafka: %v", errs)
	}

	return nil
}

// CheckConnection verifies the Kafka brokers are reachable and the activity
// topic exists.
func (ks *KafkaService) CheckConnection(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", ks.bootstrapServers)
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(ks.activityTopic)
	if err != nil {
		return fmt.Errorf("failed to read partitions for topic %s: %w", ks.activityTopic, err)
	}

	log.Printf("✅ Kafka connection verified - Topic: %s, Partitions: %d", ks.activityTopic, len(partitions))
	return nil
}
