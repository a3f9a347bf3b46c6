// Package dedupe tracks event ids already folded into an aggregation.
package dedupe

// Deduper records seen event ids so each event is folded at most once.
type Deduper interface {
	// SeenAndRecord reports whether id was already seen and records it if not.
	SeenAndRecord(id string) bool

	Size() int
}

// Option configures a set-backed Deduper.
type Option func(*setDeduper)

// WithCapacity pre-sizes the id set. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(d *setDeduper) {
		if n > 0 {
			d.capacity = n
		}
	}
}

// setDeduper never evicts: an evicted id could be folded twice. It is owned by
// a single aggregation call and is not safe for concurrent use.
type setDeduper struct {
	seen     map[string]struct{}
	capacity int
}

// New returns an empty Deduper.
func New(opts ...Option) Deduper {
	d := &setDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.capacity)
	return d
}

func (d *setDeduper) SeenAndRecord(id string) bool {
	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

// Size returns the number of distinct ids recorded.
func (d *setDeduper) Size() int {
	return len(d.seen)
}
