package kafka

import (
	"Lumina/internal/api/config"
	"Lumina/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	viewsConsumer sarama.ConsumerGroup
	viewsHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, feedService service.FeedService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	viewsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaViewConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	viewsHandler := NewViewsHandler(feedService)

	return &ConsumerManager{
		viewsConsumer: viewsConsumer,
		viewsHandler:  viewsHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaViewConsumer.Topic
		log.Info("View consumer started", "topic", topic)
		for {
			if err := m.viewsConsumer.Consume(ctx, []string{topic}, m.viewsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.viewsConsumer.Close(); err != nil {
		log.Error("Failed to close view consumer", "err", err)
	}

	return nil
}
