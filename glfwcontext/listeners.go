package glfwcontext

// listeners is an ordered set of callbacks that can be removed by the
// function returned from add.
type listeners[F any] struct {
	nextID  int
	entries []listener[F]
}

type listener[F any] struct {
	id int
	fn F
}

func (l *listeners[F]) add(fn F) func() {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listener[F]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *listeners[F]) remove(id int) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listeners[F]) len() int {
	return len(l.entries)
}

// each calls visit for a snapshot of the current callbacks, so callbacks
// may unsubscribe while being visited.
func (l *listeners[F]) each(visit func(F)) {
	snapshot := append([]listener[F](nil), l.entries...)
	for _, e := range snapshot {
		visit(e.fn)
	}
}
