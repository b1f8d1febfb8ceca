package signal

// #region ring

// Ring is a fixed-capacity FIFO buffer of float64 samples. Pushing onto a
// full ring evicts the oldest value. The zero value is not usable; construct
// with NewRing.
type Ring struct {
	buf   []float64
	head  int // index of the oldest value
	count int
}

// NewRing creates a ring with the given capacity. Capacity must be positive.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest value when full.
func (r *Ring) Push(v float64) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = v
		r.count++
		return
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// Len returns the number of stored values.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Full reports whether the ring holds exactly its capacity.
func (r *Ring) Full() bool {
	return r.count == len(r.buf)
}

// Values returns the stored values oldest-first as a fresh slice.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// Last returns the most recent n values oldest-first. If fewer than n values
// are stored, all of them are returned.
func (r *Ring) Last(n int) []float64 {
	if n >= r.count {
		return r.Values()
	}
	out := make([]float64, n)
	start := r.count - n
	for i := 0; i < n; i++ {
		out[i] = r.buf[(r.head+start+i)%len(r.buf)]
	}
	return out
}

// #endregion ring
