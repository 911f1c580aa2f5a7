package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует заказы и события изменения каталога.
// Запись синхронная: ошибка брокера возвращается вызывающему, повторы делает jitter.Retry.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
	policy jitter.Policy
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return newProducer(newWriter(cfg), logger, cfg)
}

// newWriter собирает синхронный writer. Собственные повторы kafka-go отключены,
// чтобы число попыток задавала только политика продюсера.
func newWriter(cfg *cfg.KafkaCfg) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  1,
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
}

func newProducer(writer messageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
		policy: jitter.Policy{Attempts: max(cfg.MaxRetries, 1), Base: 200 * time.Millisecond, Max: 2 * time.Second},
	}
}

// Handoff публикует заказ в топик заказов. Ключ сообщения: идентификатор заказа.
func (p *Producer) Handoff(ctx context.Context, order *domain.Order) error {
	value, err := orderPayload(order)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.write(ctx, kafka.Message{
		Topic: p.cfg.OrdersTopic,
		Key:   []byte(order.ID),
		Value: value,
	})
}

// PublishCatalogChange публикует событие изменения каталога. Ключом служит имя сущности.
func (p *Producer) PublishCatalogChange(ctx context.Context, event *usecase.CatalogChangeEvent) error {
	value, err := catalogEventPayload(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.write(ctx, kafka.Message{
		Topic: p.cfg.CatalogTopic,
		Key:   []byte(event.Entity),
		Value: value,
	})
}

func (p *Producer) write(ctx context.Context, msg kafka.Message) error {
	err := jitter.Retry(ctx, p.policy, func(ctx context.Context) error {
		return p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureTopics создаёт топики заказов и каталога, если их ещё нет.
func (p *Producer) EnsureTopics(timeout time.Duration) error {
	for _, topic := range []string{p.cfg.OrdersTopic, p.cfg.CatalogTopic} {
		if err := p.ensureTopic(topic, timeout); err != nil {
			return err
		}
	}

	return nil
}

func (p *Producer) ensureTopic(topic string, timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", topic, err))
		}
		p.logger.Infof("Kafka topic created: %s", topic)
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func orderPayload(order *domain.Order) ([]byte, error) {
	items := make([]any, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]any{
			"product_id": float64(item.ID),
			"name":       item.Name,
			"price":      item.Price.StringFixed(2),
			"quantity":   float64(item.Quantity),
		})
	}

	payload, err := structpb.NewStruct(map[string]any{
		"order_id": order.ID,
		"message":  order.Message,
		"link":     order.Link,
		"contact": map[string]any{
			"name":    order.Contact.Name,
			"phone":   order.Contact.Phone,
			"address": order.Contact.Address,
		},
		"items":      items,
		"subtotal":   order.Totals.Subtotal.StringFixed(2),
		"shipping":   order.Totals.Shipping.StringFixed(2),
		"total":      order.Totals.Total.StringFixed(2),
		"created_at": order.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}

	return proto.Marshal(payload)
}

func catalogEventPayload(event *usecase.CatalogChangeEvent) ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]any{
		"event_id":        event.EventID,
		"entity":          event.Entity,
		"count":           float64(event.Count),
		"event_timestamp": float64(event.OccurredAt.UnixMilli()),
	})
	if err != nil {
		return nil, err
	}

	return proto.Marshal(payload)
}
