package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/rules"
)

// ErrFloorNotFound is returned when a floor lookup yields no results.
var ErrFloorNotFound = errors.New("floor not found")

var _ game.Ledger = (*FloorLedger)(nil)

// FloorLedger is a game.Ledger backed by the floor_ledger table.
type FloorLedger struct {
	db *pgxpool.Pool
}

// NewFloorLedger creates a FloorLedger backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewFloorLedger(db *pgxpool.Pool) *FloorLedger {
	return &FloorLedger{db: db}
}

// Record implements game.Ledger. A zero CreatedAt is stamped with the current time.
//
// Postcondition: inserted is false and the stored row is unchanged when the
// (session, map) pair was already recorded.
func (l *FloorLedger) Record(ctx context.Context, rec game.FloorRecord) (bool, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	tag, err := l.db.Exec(ctx,
		`INSERT INTO floor_ledger
		   (session_id, region, site, floor, on_region, site_name, dungeon_kind, npcs, items, created_at)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT DO NOTHING`,
		rec.Session.String(), int(rec.Map.Site.Region), rec.Map.Site.N, rec.Map.Floor, rec.Map.OnRegion,
		rec.SiteName, string(rec.DungeonKind), rec.NPCs, rec.Items, created,
	)
	if err != nil {
		return false, fmt.Errorf("recording floor %+v: %w", rec.Map, err)
	}
	return tag.RowsAffected() == 1, nil
}

// Exists implements game.Ledger.
func (l *FloorLedger) Exists(ctx context.Context, session uuid.UUID, mid gamemap.MapID) (bool, error) {
	var ok bool
	err := l.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM floor_ledger
		    WHERE session_id = $1::uuid AND region = $2 AND site = $3 AND floor = $4 AND on_region = $5)`,
		session.String(), int(mid.Site.Region), mid.Site.N, mid.Floor, mid.OnRegion,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking floor %+v: %w", mid, err)
	}
	return ok, nil
}

// Get returns the record of mid in session.
//
// Postcondition: returns ErrFloorNotFound when no such floor was recorded.
func (l *FloorLedger) Get(ctx context.Context, session uuid.UUID, mid gamemap.MapID) (game.FloorRecord, error) {
	row := l.db.QueryRow(ctx,
		`SELECT session_id::text, region, site, floor, on_region, site_name, dungeon_kind, npcs, items, created_at
		   FROM floor_ledger
		  WHERE session_id = $1::uuid AND region = $2 AND site = $3 AND floor = $4 AND on_region = $5`,
		session.String(), int(mid.Site.Region), mid.Site.N, mid.Floor, mid.OnRegion,
	)
	rec, err := scanFloor(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.FloorRecord{}, ErrFloorNotFound
	}
	if err != nil {
		return game.FloorRecord{}, fmt.Errorf("loading floor %+v: %w", mid, err)
	}
	return rec, nil
}

// List returns every floor recorded for session, oldest first.
func (l *FloorLedger) List(ctx context.Context, session uuid.UUID) ([]game.FloorRecord, error) {
	rows, err := l.db.Query(ctx,
		`SELECT session_id::text, region, site, floor, on_region, site_name, dungeon_kind, npcs, items, created_at
		   FROM floor_ledger
		  WHERE session_id = $1::uuid
		  ORDER BY created_at, region, site, floor`,
		session.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing floors: %w", err)
	}
	defer rows.Close()

	var out []game.FloorRecord
	for rows.Next() {
		rec, err := scanFloor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning floor: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing floors: %w", err)
	}
	return out, nil
}

func scanFloor(row pgx.Row) (game.FloorRecord, error) {
	var (
		rec     game.FloorRecord
		session string
		region  int
		kind    string
	)
	err := row.Scan(&session, &region, &rec.Map.Site.N, &rec.Map.Floor, &rec.Map.OnRegion,
		&rec.SiteName, &kind, &rec.NPCs, &rec.Items, &rec.CreatedAt)
	if err != nil {
		return game.FloorRecord{}, err
	}
	id, err := uuid.Parse(session)
	if err != nil {
		return game.FloorRecord{}, fmt.Errorf("parsing session id %q: %w", session, err)
	}
	rec.Session = id
	rec.Map.Site.Region = gamemap.RegionID(region)
	rec.DungeonKind = rules.DungeonKind(kind)
	return rec, nil
}
