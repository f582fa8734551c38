package ui

// TextBuffer holds the text of a single-line input and notifies listeners
// whenever the text changes.
type TextBuffer struct {
	text      string
	nextID    int
	listeners map[int]func()
}

func NewTextBuffer() *TextBuffer {
	return &TextBuffer{listeners: map[int]func(){}}
}

func (b *TextBuffer) Text() string {
	return b.text
}

func (b *TextBuffer) IsEmpty() bool {
	return len(b.text) == 0
}

// SetText replaces the content. Listeners run only when the text differs.
func (b *TextBuffer) SetText(text string) {
	if text == b.text {
		return
	}
	b.text = text
	for _, id := range b.listenerIDs() {
		if fn, ok := b.listeners[id]; ok {
			fn()
		}
	}
}

// OnDidChange registers fn and returns the subscription that removes it.
func (b *TextBuffer) OnDidChange(fn func()) *Subscription {
	if b.listeners == nil {
		b.listeners = map[int]func(){}
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return &Subscription{dispose: func() { delete(b.listeners, id) }}
}

func (b *TextBuffer) ListenerCount() int {
	return len(b.listeners)
}

func (b *TextBuffer) listenerIDs() []int {
	ids := make([]int, 0, len(b.listeners))
	for id := 0; id < b.nextID; id++ {
		if _, ok := b.listeners[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

type Subscription struct {
	dispose  func()
	disposed bool
}

// Dispose is safe to call more than once.
func (s *Subscription) Dispose() {
	if s == nil || s.disposed {
		return
	}
	s.disposed = true
	if s.dispose != nil {
		s.dispose()
	}
}

func (s *Subscription) Disposed() bool {
	return s == nil || s.disposed
}
