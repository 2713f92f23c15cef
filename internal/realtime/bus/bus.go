package bus

import (
	"context"
	"sync"

	"github.com/yungbote/motodiag-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, msg realtime.ConsultationEvent) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.ConsultationEvent)) error
	Close() error
}

// NewNoopBus returns a Bus that drops every message.
func NewNoopBus() Bus { return noopBus{} }

type noopBus struct{}

func (noopBus) Publish(context.Context, realtime.ConsultationEvent) error { return nil }

func (noopBus) StartForwarder(context.Context, func(realtime.ConsultationEvent)) error { return nil }

func (noopBus) Close() error { return nil }

// MemoryBus delivers messages synchronously to in-process forwarders.
type MemoryBus struct {
	mu        sync.Mutex
	published []realtime.ConsultationEvent
	handlers  []func(realtime.ConsultationEvent)
}

func NewMemoryBus() *MemoryBus { return &MemoryBus{} }

func (b *MemoryBus) Publish(_ context.Context, msg realtime.ConsultationEvent) error {
	b.mu.Lock()
	b.published = append(b.published, msg)
	handlers := append([]func(realtime.ConsultationEvent){}, b.handlers...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(msg)
	}
	return nil
}

func (b *MemoryBus) StartForwarder(_ context.Context, onMsg func(m realtime.ConsultationEvent)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, onMsg)
	return nil
}

// Published returns a copy of everything published so far.
func (b *MemoryBus) Published() []realtime.ConsultationEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]realtime.ConsultationEvent(nil), b.published...)
}

func (b *MemoryBus) Close() error { return nil }
