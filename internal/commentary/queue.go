package commentary

import (
	"context"
	"log"
	"sort"
	"sync"

	"metalcast/internal/domain"
)

// AudioSynthesizer materializes a commentary text as an audio artifact and
// returns a reference to it.
type AudioSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Queue is the bounded holding area for generated commentary. Always sorted
// by (priority ascending, created_at ascending) after an insertion batch;
// overflow is trimmed from the tail so high-priority items are never the
// ones evicted.
type Queue struct {
	mu       sync.Mutex
	capacity int
	items    []domain.CommentaryItem
}

func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 50
	}
	return &Queue{capacity: capacity}
}

// Enqueue appends the batch, re-sorts the whole queue and trims down to
// capacity.
func (q *Queue) Enqueue(items ...domain.CommentaryItem) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, items...)
	sort.SliceStable(q.items, func(i, j int) bool {
		if q.items[i].Priority != q.items[j].Priority {
			return q.items[i].Priority < q.items[j].Priority
		}
		return q.items[i].CreatedAt.Before(q.items[j].CreatedAt)
	})
	if len(q.items) > q.capacity {
		q.items = q.items[:q.capacity]
	}
}

// DequeueFront removes and returns the highest-priority, oldest item. The
// second return is false when the queue is empty.
func (q *Queue) DequeueFront() (domain.CommentaryItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return domain.CommentaryItem{}, false
	}
	front := q.items[0]
	q.items = q.items[1:]
	return front, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Items copies the queue contents in order for the cycle log and the
// read-only surfaces.
func (q *Queue) Items() []domain.CommentaryItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]domain.CommentaryItem, len(q.items))
	copy(out, q.items)
	return out
}

// Materialize walks the queue front to back and requests audio for up to
// max items that lack a reference. A synthesis failure is logged and leaves
// the item unset for retry on a later cycle. Returns how many references
// were attached.
//
// Synthesis happens outside the queue lock: a slow speech API must not
// block readers like the queue endpoints or the bot. Items are snapshotted
// first and the reference attached afterwards.
func (q *Queue) Materialize(ctx context.Context, synth AudioSynthesizer, max int) int {
	if max <= 0 {
		return 0
	}

	q.mu.Lock()
	pending := make([]domain.CommentaryItem, 0, max)
	for _, item := range q.items {
		if len(pending) >= max {
			break
		}
		if item.AudioRef == "" {
			pending = append(pending, item)
		}
	}
	q.mu.Unlock()

	attached := 0
	for _, item := range pending {
		ref, err := synth.Synthesize(ctx, item.Text)
		if err != nil {
			log.Printf("Audio synthesis failed: %v", err)
			continue
		}
		if q.attachRef(item, ref) {
			attached++
		}
	}
	return attached
}

// attachRef writes ref onto the still-queued item matching the snapshot.
// An item dequeued while its audio was rendering is simply gone; the
// orphaned file is harmless.
func (q *Queue) attachRef(item domain.CommentaryItem, ref string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.items {
		if q.items[i].AudioRef == "" &&
			q.items[i].Text == item.Text &&
			q.items[i].CreatedAt.Equal(item.CreatedAt) {
			q.items[i].AudioRef = ref
			return true
		}
	}
	return false
}
