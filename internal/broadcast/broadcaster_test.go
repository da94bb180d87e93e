package broadcast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/shenikar/city_safety_map/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	id, ch := b.Subscribe()
	assert.Equal(t, 1, b.SubscriberCount())

	b.Unsubscribe(id)
	b.Unsubscribe(id)
	assert.Equal(t, 0, b.SubscriberCount())

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	default:
		t.Fatal("channel should be closed and readable")
	}
}

func TestBroadcaster_Publish(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	alert := models.Alert{RegionID: "r1", Severity: models.SeverityWarning, Message: "test"}
	b.Publish(alert)

	select {
	case got := <-ch:
		assert.Equal(t, alert, got)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for alert")
	}
}

func TestBroadcaster_SlowSubscriberDrops(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe()
	defer b.Unsubscribe(id)

	for i := 0; i < SubscriberBuffer+5; i++ {
		b.Publish(models.Alert{Message: "flood"})
	}

	count := 0
	for len(ch) > 0 {
		<-ch
		count++
	}
	assert.Equal(t, SubscriberBuffer, count)
}

func TestBroadcaster_ConcurrentSubscribePublish(t *testing.T) {
	b := NewBroadcaster()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ch := b.Subscribe()
			done := make(chan struct{})
			go func() {
				defer close(done)
				for range ch {
				}
			}()
			time.Sleep(2 * time.Millisecond)
			b.Unsubscribe(id)
			<-done
		}()
	}

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(models.Alert{Severity: models.SeverityInfo})
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	channels := make([]<-chan models.Alert, 0, 3)
	for i := 0; i < 3; i++ {
		_, ch := b.Subscribe()
		channels = append(channels, ch)
	}
	require.Equal(t, 3, b.SubscriberCount())

	b.Close()

	assert.Equal(t, 0, b.SubscriberCount())
	for _, ch := range channels {
		_, ok := <-ch
		assert.False(t, ok)
	}
}
