// Package producers streams serialized café events to Kafka. One sync
// producer carries every topic the simulation emits, visits and orders
// through day summaries, so a single connection covers the whole café.
package simulator

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/chrisdamba/cafesim/internal/models"
)

// clientID names the café simulator in broker logs and quotas.
const clientID = "cafesim"

type SaramaProducer struct {
	producer sarama.SyncProducer
}

// NewSaramaProducer connects a sync producer to the configured brokers.
// Sends block until every in-sync replica acks, so an event that comes
// back without error is on the stream.
func NewSaramaProducer(config *models.Config) (*SaramaProducer, error) {
	brokerList := strings.Split(config.KafkaBrokerList, ",")

	producer, err := sarama.NewSyncProducer(brokerList, producerConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Sarama producer connected to brokers %v", brokerList)
	return &SaramaProducer{producer: producer}, nil
}

func producerConfig(config *models.Config) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = clientID
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // required for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	// session_timeout_ms bounds how long one send may wait on acks
	if config.SessionTimeoutMs > 0 {
		saramaConfig.Producer.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	} else {
		saramaConfig.Producer.Timeout = 45 * time.Second
	}

	return saramaConfig
}

// producerMessage wraps one serialized event for its topic. Events carry
// no key; sarama's default partitioner spreads them across partitions.
func producerMessage(topic string, payload []byte) *sarama.ProducerMessage {
	return &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(payload),
	}
}

func (s *SaramaProducer) WriteMessage(topic string, msg []byte) error {
	if s.producer == nil {
		return fmt.Errorf("Sarama producer is not initialized")
	}

	if _, _, err := s.producer.SendMessage(producerMessage(topic, msg)); err != nil {
		log.Printf("Failed to send message to topic %s: %v", topic, err)
		return err
	}
	return nil
}

func (s *SaramaProducer) Close() error {
	if s.producer != nil {
		return s.producer.Close()
	}
	return nil
}
