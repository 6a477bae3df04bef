// Package effects carries ephemeral visual records from the simulation
// core to the render layer. The core pushes creation requests into a
// bounded queue and never reads them back; the renderer drains the
// queue and owns lifespans and drawing. Nothing here is authoritative
// simulation state.
package effects

import (
	"math"

	"github.com/pthm-cable/crabs/genome"
)

// Kind identifies an effect record.
type Kind uint8

const (
	KindCollision Kind = iota
	KindBirth
	KindDeath
)

// Effect is one creation request.
type Effect struct {
	Kind Kind
	X, Y float32

	// Collision fields
	VX, VY    float32
	Intensity float32

	// Death fields: snapshot of the crab at its final moment, so the
	// renderer can depict it after removal.
	Heading float32
	Genes   genome.Genome
}

// Queue is a fixed-capacity ring. Pushes past capacity drop the new
// record; malformed (non-finite) records are dropped silently. Both
// choices favour keeping the tick running over cosmetic completeness.
type Queue struct {
	buf     []Effect
	start   int
	count   int
	dropped int
}

// NewQueue creates a queue holding at most size effects.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{buf: make([]Effect, size)}
}

// Len returns the number of pending effects.
func (q *Queue) Len() int {
	return q.count
}

// Dropped returns how many records were discarded since creation.
func (q *Queue) Dropped() int {
	return q.dropped
}

// PushCollision queues a collision spark at the contact point.
func (q *Queue) PushCollision(x, y, vx, vy, intensity float32) {
	if !finite(x, y, vx, vy, intensity) {
		q.dropped++
		return
	}
	q.push(Effect{Kind: KindCollision, X: x, Y: y, VX: vx, VY: vy, Intensity: intensity})
}

// PushBirth queues a birth marker.
func (q *Queue) PushBirth(x, y float32) {
	if !finite(x, y) {
		q.dropped++
		return
	}
	q.push(Effect{Kind: KindBirth, X: x, Y: y})
}

// PushDeath queues a death record carrying a genome snapshot. The
// snapshot is copied so removal of the crab cannot mutate it.
func (q *Queue) PushDeath(x, y, heading float32, genes genome.Genome) {
	if !finite(x, y, heading) {
		q.dropped++
		return
	}
	q.push(Effect{Kind: KindDeath, X: x, Y: y, Heading: heading, Genes: genes.Clone()})
}

// Drain appends all pending effects to dst, empties the queue, and
// returns dst.
func (q *Queue) Drain(dst []Effect) []Effect {
	for i := 0; i < q.count; i++ {
		dst = append(dst, q.buf[(q.start+i)%len(q.buf)])
	}
	q.start = 0
	q.count = 0
	return dst
}

func (q *Queue) push(e Effect) {
	if q.count == len(q.buf) {
		q.dropped++
		return
	}
	q.buf[(q.start+q.count)%len(q.buf)] = e
	q.count++
}

func finite(vals ...float32) bool {
	for _, v := range vals {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
