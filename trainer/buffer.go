package trainer

import "alphazero/selfplay"

// Buffer is a FIFO replay buffer. A capacity of 0 leaves it unbounded.
type Buffer struct {
	capacity int
	examples []selfplay.Example
}

func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{capacity: capacity}
}

// Append adds examples in order, then drops the oldest entries beyond capacity.
func (b *Buffer) Append(examples ...selfplay.Example) {
	b.examples = append(b.examples, examples...)
	if b.capacity > 0 && len(b.examples) > b.capacity {
		kept := make([]selfplay.Example, b.capacity)
		copy(kept, b.examples[len(b.examples)-b.capacity:])
		b.examples = kept
	}
}

// Examples returns the buffer contents, oldest first. The slice must not be modified.
func (b *Buffer) Examples() []selfplay.Example {
	return b.examples
}

func (b *Buffer) Len() int {
	return len(b.examples)
}

func (b *Buffer) Capacity() int {
	return b.capacity
}
