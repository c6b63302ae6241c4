package graph

// LabelPool hands out reusable label handles keyed by data index, so that
// scrolling reuses labels instead of creating new ones for every point that
// comes into view.
//
// Every slot is either bound to exactly one index or free.
type LabelPool[T any] struct {
	labels   []T
	free     []bool
	unused   []int
	bindings map[int]int
	newLabel func() T
}

// NewLabelPool creates a pool which allocates handles with newLabel.
func NewLabelPool[T any](newLabel func() T) *LabelPool[T] {
	return &LabelPool[T]{
		bindings: make(map[int]int),
		newLabel: newLabel,
	}
}

// Activate binds a handle to index and returns it. A free handle is reused
// if one exists, otherwise a new one is allocated. Activating an index that
// is already bound returns its current handle.
func (p *LabelPool[T]) Activate(index int) T {
	if slot, ok := p.bindings[index]; ok {
		return p.labels[slot]
	}
	if n := len(p.unused); n > 0 {
		slot := p.unused[n-1]
		p.unused = p.unused[:n-1]
		p.free[slot] = false
		p.bindings[index] = slot
		return p.labels[slot]
	}
	label := p.newLabel()
	p.bindings[index] = len(p.labels)
	p.labels = append(p.labels, label)
	p.free = append(p.free, false)
	return label
}

// Deactivate releases the handle bound to index. It is a no-op for unbound
// indices.
func (p *LabelPool[T]) Deactivate(index int) {
	slot, ok := p.bindings[index]
	if !ok {
		return
	}
	delete(p.bindings, index)
	p.free[slot] = true
	p.unused = append(p.unused, slot)
}

// Label returns the handle bound to index, if any.
func (p *LabelPool[T]) Label(index int) (T, bool) {
	slot, ok := p.bindings[index]
	if !ok {
		var zero T
		return zero, false
	}
	return p.labels[slot], true
}

// ActiveLabels returns every bound handle in allocation order.
func (p *LabelPool[T]) ActiveLabels() []T {
	active := make([]T, 0, len(p.bindings))
	for slot, label := range p.labels {
		if !p.free[slot] {
			active = append(active, label)
		}
	}
	return active
}

// Bound returns the indices that currently hold a handle, in no particular
// order.
func (p *LabelPool[T]) Bound() []int {
	indices := make([]int, 0, len(p.bindings))
	for index := range p.bindings {
		indices = append(indices, index)
	}
	return indices
}

// Len returns the number of handles the pool has allocated.
func (p *LabelPool[T]) Len() int {
	return len(p.labels)
}

// Reset releases every binding while keeping the allocated handles.
func (p *LabelPool[T]) Reset() {
	for index := range p.bindings {
		p.Deactivate(index)
	}
}
