// Package present carries fire-and-forget presentation requests (UI commands,
// animations, sounds, music) from the simulation to whatever draws the game.
package present

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/geom"
)

// Event is a presentation request.
type Event interface {
	isEvent()
}

// UIRequest is a UI command.
type UIRequest struct {
	Kind UIKind
}

// UIKind names a UI command.
type UIKind int

const (
	// StopCentering asks the view to stop tracking the player while a floor changes.
	StopCentering UIKind = iota
	// StartCentering resumes tracking.
	StartCentering
)

// PlayerMove reports that the player stepped one tile in Dir.
type PlayerMove struct {
	Dir geom.Direction
}

// Anim plays an animation image at the given tiles. From is set for shots.
type Anim struct {
	Img   string
	Tiles []geom.Vec2d
	From  *geom.Vec2d
}

// Sound plays a named sound effect, optionally at a map position.
type Sound struct {
	Name string
	Pos  *geom.Vec2d
}

// Music switches the background music.
type Music struct {
	Name string
}

func (UIRequest) isEvent()  {}
func (PlayerMove) isEvent() {}
func (Anim) isEvent()       {}
func (Sound) isEvent()      {}
func (Music) isEvent()      {}

func (u UIRequest) String() string {
	switch u.Kind {
	case StopCentering:
		return "ui:stop-centering"
	case StartCentering:
		return "ui:start-centering"
	default:
		return fmt.Sprintf("ui:%d", u.Kind)
	}
}

// Pusher accepts presentation events without blocking.
type Pusher interface {
	Push(ev Event)
}

// Queue is a bounded outbound event queue. Push never blocks: when the buffer
// is full or the queue is closed the event is dropped and logged at Debug.
// Safe for concurrent use by one producer and any number of consumers.
type Queue struct {
	events  chan Event
	logger  *zap.Logger
	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewQueue creates a Queue buffering up to size events.
//
// Postcondition: a non-positive size falls back to 64.
func NewQueue(size int, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{events: make(chan Event, size), logger: logger}
}

// Push enqueues ev.
//
// Postcondition: returns immediately whether or not ev was enqueued.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		q.dropped++
		q.logger.Debug("presentation event dropped", zap.String("reason", "closed"), zap.Any("event", ev))
		return
	}
	select {
	case q.events <- ev:
	default:
		q.dropped++
		q.logger.Debug("presentation event dropped", zap.String("reason", "full"), zap.Any("event", ev))
	}
}

// Events returns the read-only event channel.
func (q *Queue) Events() <-chan Event {
	return q.events
}

// Drain removes and returns every buffered event without blocking.
func (q *Queue) Drain() []Event {
	var out []Event
	for {
		select {
		case ev, ok := <-q.events:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Dropped returns how many events were discarded.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Close closes the event channel. Further pushes are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.events)
	}
}
