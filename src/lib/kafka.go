package lib

import (
	"context"
	"encoding/json"
	"log"
	"shareit/src/config"
	"shareit/src/types"
	"strconv"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type BookingEventType string

const (
	BOOKING_CREATED  BookingEventType = "booking-created"
	BOOKING_APPROVED BookingEventType = "booking-approved"
	BOOKING_REJECTED BookingEventType = "booking-rejected"
)

type BookingEvent struct {
	Type      BookingEventType    `json:"type"`
	BookingID uint                `json:"bookingId"`
	ItemID    uint                `json:"itemId"`
	BookerID  uint                `json:"bookerId"`
	Status    types.BookingStatus `json:"status"`
	At        time.Time           `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func GetKafkaProducerConfig(broker, clientId string) kafka.ConfigMap {
	return kafka.ConfigMap{
		"bootstrap.servers": broker,
		"client.id":         clientId,
		"acks":              "all",
	}
}

func NewKafkaPublisher(broker, clientId, topic string) (*KafkaPublisher, error) {
	cfg := GetKafkaProducerConfig(broker, clientId)
	p, err := kafka.NewProducer(&cfg)
	if err != nil {
		log.Printf("Error on producer: %s\n", err.Error())
		return nil, err
	}
	go func() {
		for e := range p.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				log.Printf("[kafka] Delivery failed for %s: %s\n", string(m.Key), m.TopicPartition.Error.Error())
			}
		}
	}()
	return &KafkaPublisher{producer: p, topic: topic}, nil
}

// Publish enqueues the event keyed by booking id, so all events of one booking
// land on the same partition in order.
func (k *KafkaPublisher) Publish(_ context.Context, event BookingEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(strconv.FormatUint(uint64(event.BookingID), 10)),
		Value:          value,
	}, nil)
}

func (k *KafkaPublisher) Close() {
	k.producer.Flush(5000)
	k.producer.Close()
}

func KafkaCreateTopics(topics ...string) ([]kafka.TopicResult, error) {
	a, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": config.GetKafkaBroker(),
	})
	if err != nil {
		log.Printf("Error on AdminClient: %s\n", err.Error())
		return nil, err
	}
	defer a.Close()
	topicsDef := []kafka.TopicSpecification{}
	for _, topic := range topics {
		topicsDef = append(topicsDef, kafka.TopicSpecification{
			Topic:             topic,
			NumPartitions:     10,
			ReplicationFactor: 1,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := a.CreateTopics(ctx, topicsDef)
	if err != nil {
		log.Printf("Error creating topics: %s\n", err.Error())
		return nil, err
	}
	return result, nil
}
