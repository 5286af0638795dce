package state

// Cell holds one piece of owned state and notifies subscribers on change.
// Cells belong to the UI loop: Set and the subscribers run synchronously
// on the caller's goroutine, in subscription order.
type Cell[T any] struct {
	value  T
	equal  func(a, b T) bool
	subs   []cellSub[T]
	nextID int
}

type cellSub[T any] struct {
	id int
	fn func(old, new T)
}

// NewCell creates a cell with an initial value.
// equal decides whether a Set is a change; nil means every Set notifies.
func NewCell[T any](initial T, equal func(a, b T) bool) *Cell[T] {
	return &Cell[T]{value: initial, equal: equal}
}

// Get returns the current value
func (c *Cell[T]) Get() T {
	return c.value
}

// Set stores v and notifies subscribers if it changed
func (c *Cell[T]) Set(v T) {
	old := c.value
	if c.equal != nil && c.equal(old, v) {
		return
	}
	c.value = v

	// Copy so subscribers may unsubscribe while being notified
	subs := append([]cellSub[T](nil), c.subs...)
	for _, s := range subs {
		s.fn(old, v)
	}
}

// Update applies fn to the current value and stores the result
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

// Subscribe registers fn for changes and returns an unsubscribe function
func (c *Cell[T]) Subscribe(fn func(old, new T)) func() {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, cellSub[T]{id: id, fn: fn})

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}
