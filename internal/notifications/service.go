package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"medq/internal/shared/config"
)

// Service wires the Kafka publisher and consumer together with the email
// sender and manages their lifecycle from main.
type Service interface {
	Publisher
	Start(ctx context.Context) error
	Stop() error
}

type service struct {
	publisher Publisher
	consumer  Consumer

	numWorkers int

	mu        sync.Mutex
	isRunning bool
}

// NewService builds the notification service from application config. When
// SMTP is unconfigured the consumer delivers to the log-only sender so the
// pipeline stays observable in development.
func NewService(cfg *config.Config) (Service, error) {
	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.TicketTopic = cfg.Kafka.TicketTopic

	publisher, err := NewKafkaPublisher(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket notification publisher: %w", err)
	}

	var sender EmailSender
	if cfg.Email.SMTPHost != "" {
		smtpSender, err := NewSMTPEmailSender(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  "MedQ",
		})
		if err != nil {
			return nil, err
		}
		sender = smtpSender
	} else {
		log.Println("📧 SMTP unconfigured, ticket emails will be logged only")
		sender = NewLogEmailSender()
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.TicketTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

	consumer, err := NewKafkaConsumer(consumerConfig, sender)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket notification consumer: %w", err)
	}

	return &service{
		publisher:  publisher,
		consumer:   consumer,
		numWorkers: 3,
	}, nil
}

func (s *service) PublishTicketAssigned(ctx context.Context, notification *TicketNotification) error {
	return s.publisher.PublishTicketAssigned(ctx, notification)
}

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := s.consumer.StartConsumers(ctx, s.numWorkers); err != nil {
		return fmt.Errorf("failed to start notification consumers: %w", err)
	}

	s.isRunning = true
	log.Println("📬 Ticket notification service started")
	return nil
}

func (s *service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	var errs []error
	if err := s.consumer.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := s.publisher.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors stopping notification service: %v", errs)
	}

	log.Println("📬 Ticket notification service stopped")
	return nil
}

func (s *service) Close() error {
	return s.Stop()
}

func (s *service) HealthCheck(ctx context.Context) error {
	return s.publisher.HealthCheck(ctx)
}
