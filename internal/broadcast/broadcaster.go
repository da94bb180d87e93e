// Package broadcast рассылает новые алерты подписчикам внутри процесса (SSE-клиентам)
package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/shenikar/city_safety_map/internal/models"
)

// SubscriberBuffer - размер буфера канала подписчика
const SubscriberBuffer = 100

// Broadcaster - pub/sub алертов. Медленные подписчики теряют сообщения, отправитель не блокируется.
type Broadcaster struct {
	subscribers map[uint64]chan models.Alert
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan models.Alert),
	}
}

func (b *Broadcaster) Subscribe() (uint64, <-chan models.Alert) {
	id := b.nextID.Add(1)
	ch := make(chan models.Alert, SubscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

// Unsubscribe закрывает канал подписчика. Повторный вызов ничего не делает.
func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

// Publish отправляет алерт всем подписчикам
func (b *Broadcaster) Publish(alert models.Alert) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- alert:
		default:
			// медленный подписчик
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close закрывает все каналы, SSE-потоки после этого завершаются
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
