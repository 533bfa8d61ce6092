package notify

import (
	"sync"

	"github.com/rocketscienceinc/uril/internal/entity"
)

type Listener func(event entity.Event)

// Bus fans game events out to listeners. While suspended, events are dropped.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
	order     []int
	suspended int
}

func NewBus() *Bus {
	return &Bus{
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers the listener and returns a function removing it again.
func (that *Bus) Subscribe(listener Listener) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextID
	that.nextID++
	that.listeners[id] = listener
	that.order = append(that.order, id)

	var once sync.Once

	return func() {
		once.Do(func() {
			that.unsubscribe(id)
		})
	}
}

func (that *Bus) unsubscribe(id int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.listeners, id)
	for i, existing := range that.order {
		if existing == id {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

// Publish calls every listener in subscription order. Listeners run outside the lock.
func (that *Bus) Publish(event entity.Event) {
	that.mu.Lock()
	if that.suspended > 0 {
		that.mu.Unlock()
		return
	}

	listeners := make([]Listener, 0, len(that.order))
	for _, id := range that.order {
		listeners = append(listeners, that.listeners[id])
	}
	that.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Suspend drops events until the returned resume function is called. Calls nest.
func (that *Bus) Suspend() func() {
	that.mu.Lock()
	that.suspended++
	that.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			that.mu.Lock()
			that.suspended--
			that.mu.Unlock()
		})
	}
}

func (that *Bus) Suspended() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.suspended > 0
}
