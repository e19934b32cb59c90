package repository

import (
	"context"
	"encoding/json"

	"video_access_service/internal/playback/domain"
	"video_access_service/pkg/database"

	"github.com/segmentio/kafka-go"
	"github.com/streadway/amqp"
	"gorm.io/gorm"
)

// AuditRepo definition admin audit table
type AuditRepo interface {
	AutoMigrate() error
	Create(ctx context.Context, entry *domain.AdminAuditLog) error
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo create AuditRepo
func NewAuditRepo(db *gorm.DB) AuditRepo {
	return &auditRepo{db: db}
}

func (r *auditRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.AdminAuditLog{})
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AdminAuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// AuditPublisher forwards stored audit entries to a broker
type AuditPublisher interface {
	Publish(ctx context.Context, entry domain.AdminAuditLog) error
}

type rabbitAuditPublisher struct {
	rabbit database.RabbitRepo
	queue  string
}

// NewRabbitAuditPublisher publish to queue on the default exchange
func NewRabbitAuditPublisher(rabbit database.RabbitRepo, queue string) AuditPublisher {
	return &rabbitAuditPublisher{rabbit: rabbit, queue: queue}
}

func (p *rabbitAuditPublisher) Publish(_ context.Context, entry domain.AdminAuditLog) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return p.rabbit.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    entry.CreatedAt,
		Type:         entry.Action,
		Body:         body,
	})
}

type kafkaAuditPublisher struct {
	writer database.KafkaWriter
}

// NewKafkaAuditPublisher messages are keyed by admin uid
func NewKafkaAuditPublisher(writer database.KafkaWriter) AuditPublisher {
	return &kafkaAuditPublisher{writer: writer}
}

func (p *kafkaAuditPublisher) Publish(ctx context.Context, entry domain.AdminAuditLog) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.AdminUID),
		Value: body,
		Time:  entry.CreatedAt,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(entry.Action)},
		},
	})
}

// noopAuditPublisher used when audit.sink is none
type noopAuditPublisher struct{}

// NewNoopAuditPublisher keeps audit entries in the database only
func NewNoopAuditPublisher() AuditPublisher {
	return noopAuditPublisher{}
}

func (noopAuditPublisher) Publish(context.Context, domain.AdminAuditLog) error {
	return nil
}
