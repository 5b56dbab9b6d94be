package pure

import "sync"

// Table is a bounded map split into two generations.
//
// Writes go to the head generation. When the head reaches maxSize the older
// generation is dropped and becomes the new, empty head, so at most
// 2*maxSize entries are retained. Reads consult the head first.
type Table[K comparable, O any] struct {
	mu          sync.Mutex
	generations [2]map[K]O
	headIdx     int
	maxSize     int
}

func NewTable[K comparable, O any](maxSize uint32) *Table[K, O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	return &Table[K, O]{
		generations: [2]map[K]O{make(map[K]O), make(map[K]O)},
		maxSize:     int(maxSize),
	}
}

func (t *Table[K, O]) Load(key K) (O, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.generations[t.headIdx][key]; ok {
		return v, true
	}
	v, ok := t.generations[1-t.headIdx][key]
	return v, ok
}

func (t *Table[K, O]) Store(key K, value O) {
	t.mu.Lock()
	defer t.mu.Unlock()

	head := t.generations[t.headIdx]
	if _, exists := head[key]; !exists && len(head) >= t.maxSize {
		t.headIdx = 1 - t.headIdx
		clear(t.generations[t.headIdx])
		head = t.generations[t.headIdx]
	}
	head[key] = value
}

// Len counts the entries across both generations, duplicates included.
func (t *Table[K, O]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.generations[0]) + len(t.generations[1])
}
