package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// FloorRecord describes one generated floor.
type FloorRecord struct {
	Session     uuid.UUID
	Map         gamemap.MapID
	SiteName    string
	DungeonKind rules.DungeonKind
	NPCs        int
	Items       int
	CreatedAt   time.Time
}

// Ledger records which floors a session has generated.
type Ledger interface {
	// Record stores rec unless a record for the same session and map exists.
	//
	// Postcondition: inserted is false when the floor was already recorded.
	Record(ctx context.Context, rec FloorRecord) (inserted bool, err error)
	// Exists reports whether a floor has been recorded for session and mid.
	Exists(ctx context.Context, session uuid.UUID, mid gamemap.MapID) (bool, error)
}

type ledgerKey struct {
	session uuid.UUID
	mid     gamemap.MapID
}

// MemoryLedger is a Ledger held in process memory. Safe for concurrent use.
type MemoryLedger struct {
	mu      sync.Mutex
	records map[ledgerKey]FloorRecord
	order   []ledgerKey
}

// NewMemoryLedger creates an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[ledgerKey]FloorRecord)}
}

// Record implements Ledger.
func (l *MemoryLedger) Record(_ context.Context, rec FloorRecord) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := ledgerKey{session: rec.Session, mid: rec.Map}
	if _, ok := l.records[k]; ok {
		return false, nil
	}
	l.records[k] = rec
	l.order = append(l.order, k)
	return true, nil
}

// Exists implements Ledger.
func (l *MemoryLedger) Exists(_ context.Context, session uuid.UUID, mid gamemap.MapID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.records[ledgerKey{session: session, mid: mid}]
	return ok, nil
}

// Records returns every record in insertion order.
func (l *MemoryLedger) Records() []FloorRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]FloorRecord, 0, len(l.order))
	for _, k := range l.order {
		out = append(out, l.records[k])
	}
	return out
}
