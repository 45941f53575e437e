package hooks

import (
	"context"
	"sync"
	"time"
)

// Record is one dispatched event as seen by a Tap.
type Record struct {
	Name string
	Args any
	Err  error
	At   time.Time
}

// Recorder keeps the most recent dispatched events in memory.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	records []Record
}

// NewRecorder keeps up to limit records; limit <= 0 keeps everything.
func NewRecorder(limit int) *Recorder { return &Recorder{limit: limit} }

func (r *Recorder) Observe(_ context.Context, rec Record) {
	r.mu.Lock()
	r.records = append(r.records, rec)
	if r.limit > 0 && len(r.records) > r.limit {
		r.records = append(r.records[:0:0], r.records[len(r.records)-r.limit:]...)
	}
	r.mu.Unlock()
}

// Records returns a copy of the recorded events, oldest first.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Names returns the recorded event names, oldest first.
func (r *Recorder) Names() []string {
	recs := r.Records()
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.Name
	}
	return out
}

// Reset drops all records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.records = nil
	r.mu.Unlock()
}

// Feed fans dispatched events out to subscribers. A subscriber whose buffer
// is full misses events; dispatch never waits on it.
type Feed struct {
	mu      sync.Mutex
	next    int
	subs    map[int]chan Record
	dropped uint64
}

// NewFeed returns a Feed without subscribers.
func NewFeed() *Feed { return &Feed{subs: make(map[int]chan Record)} }

func (f *Feed) Observe(_ context.Context, rec Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- rec:
		default:
			f.dropped++
		}
	}
}

// Subscribe returns a channel of events and a cancel func that closes it.
func (f *Feed) Subscribe(buf int) (<-chan Record, func()) {
	if buf <= 0 {
		buf = 64
	}
	ch := make(chan Record, buf)
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = ch
	f.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the current subscriber count.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Dropped returns how many deliveries were skipped because of full buffers.
func (f *Feed) Dropped() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}
