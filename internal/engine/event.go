package engine

// Event is a multi-cast event. Listeners are registered with a handle so
// they can be removed again (function values are not comparable in Go).
type Event struct {
	listeners map[int]func()
	nextID    int
}

// AddListener adds a callback and returns a handle for RemoveListener.
func (e *Event) AddListener(callback func()) int {
	if callback == nil {
		return 0
	}
	if e.listeners == nil {
		e.listeners = make(map[int]func())
	}
	e.nextID++
	e.listeners[e.nextID] = callback
	return e.nextID
}

func (e *Event) RemoveListener(id int) {
	delete(e.listeners, id)
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

func (e *Event) Invoke() {
	for _, listener := range e.listeners {
		listener()
	}
}

func (e *Event) ListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument.
type EventWithArg[T any] struct {
	listeners map[int]func(T)
	nextID    int
}

func (e *EventWithArg[T]) AddListener(callback func(T)) int {
	if callback == nil {
		return 0
	}
	if e.listeners == nil {
		e.listeners = make(map[int]func(T))
	}
	e.nextID++
	e.listeners[e.nextID] = callback
	return e.nextID
}

func (e *EventWithArg[T]) RemoveListener(id int) {
	delete(e.listeners, id)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) ListenerCount() int {
	return len(e.listeners)
}
