package eventpublisher

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

func TestNewKafkaPublisherPartitionsByKey(t *testing.T) {
	pub := NewKafkaPublisher([]string{"localhost:9092"}, "wallet-events")
	defer pub.Close()

	// Events carry the aggregate ID as the message key; the balancer must
	// hash that key so one wallet's events stay on one partition.
	if _, ok := pub.writer.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("expected key-hashing balancer, got %T", pub.writer.Balancer)
	}

	if pub.writer.RequiredAcks != kafka.RequireAll {
		t.Fatalf("expected RequireAll acks, got %v", pub.writer.RequiredAcks)
	}
}
