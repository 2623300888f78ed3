package repository

import (
	"context"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	pkgkafka "FundPulse/pkg/kafka"
)

// KafkaResultPublisher implements ResultPublisher for Kafka. Messages are
// keyed by scheme code so per-fund history lands on one partition.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaResultPublisher creates a Kafka result publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) drepo.ResultPublisher {
	if topic == "" {
		topic = "fundpulse.results"
	}
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

func (p *KafkaResultPublisher) PublishResults(ctx context.Context, runID string, results []models.FundResult) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(results))
	for i, r := range results {
		msgs[i] = pkgkafka.Message{
			Key: []byte(r.SchemeCode),
			Value: map[string]interface{}{
				"run_id": runID,
				"result": r,
			},
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
