// Package cartevents — внутренняя шина событий изменения корзины.
// Сервис корзины публикует событие после каждой успешной мутации,
// чтобы заинтересованные наблюдатели не опрашивали корзину повторно.
package cartevents

import "sync"

// Op — тип мутации корзины.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
)

// Event описывает изменение корзины одной сессии.
type Event struct {
	SessionID string
	Op        Op
}

// Bus — шина подписки на события корзины. Публикация не блокирует
// мутацию: событие для отставшего подписчика отбрасывается.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// NewBus создаёт пустую шину событий.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe возвращает канал событий и функцию отписки.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish рассылает событие всем подписчикам без блокировки.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// подписчик не успевает — событие пропускается
		}
	}
}
