package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Publisher is the contract intake depends on for publishing ticket
// notifications. Delivery is best-effort: a publish failure never fails
// the submission.
type Publisher interface {
	PublishTicketAssigned(ctx context.Context, notification *TicketNotification) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka producer
type KafkaProducerConfig struct {
	Brokers          []string
	TicketTopic      string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		TicketTopic:      "ticket-notifications",
		RetryMax:         3,
		TimeoutMs:        10000, // 10 seconds
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaPublisher publishes ticket notifications to Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(config *KafkaProducerConfig) (Publisher, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one patient's notifications ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka ticket notification producer created successfully")
	return &KafkaPublisher{
		producer: producer,
		config:   config,
	}, nil
}

// PublishTicketAssigned publishes a single ticket notification to Kafka
func (kp *KafkaPublisher) PublishTicketAssigned(ctx context.Context, notification *TicketNotification) error {
	notification.Status = NotificationStatusQueued
	notification.UpdatedAt = time.Now()

	messageBytes, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kp.config.TicketTopic,
		Key:       sarama.StringEncoder(notification.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := kp.producer.SendMessage(message)
	if err != nil {
		notification.Status = NotificationStatusFailed
		return fmt.Errorf("failed to publish ticket notification: %w", err)
	}

	log.Printf("📤 Ticket notification published: token=%d partition=%d offset=%d",
		notification.TokenNumber, partition, offset)
	return nil
}

// Close shuts down the producer
func (kp *KafkaPublisher) Close() error {
	return kp.producer.Close()
}

// HealthCheck verifies the producer can reach the brokers
func (kp *KafkaPublisher) HealthCheck(ctx context.Context) error {
	if kp.producer == nil {
		return fmt.Errorf("producer is not initialized")
	}
	return nil
}
