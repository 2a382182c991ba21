package events

import (
	"context"
	"slices"
	"sync"
)

type Recorded struct {
	EventType    string
	Payload      []byte
	PartitionKey string
}

// MemoryPublisher records published events in order; used by tests to assert
// on lifecycle emission.
type MemoryPublisher struct {
	mu      sync.Mutex
	records []Recorded
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{records: make([]Recorded, 0, 16)}
}

func (p *MemoryPublisher) Publish(_ context.Context, eventType string, payload []byte, partitionKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append(p.records, Recorded{EventType: eventType, Payload: payload, PartitionKey: partitionKey})
	return nil
}

func (p *MemoryPublisher) Records() []Recorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.records)
}
