// Package sim drives the simulation turn by turn: every character on the
// current map takes its turn in id order, the player first.
package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game"
	"github.com/cory-johannsen/ruins/internal/game/action"
	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/npcai"
)

// Runner advances a Game one turn at a time.
// It is not safe for concurrent use.
type Runner struct {
	g      *game.Game
	player Controller
	logger *zap.Logger
	turn   int
}

// NewRunner creates a Runner that plays the player with player.
//
// Precondition: g, player and logger must not be nil.
func NewRunner(g *game.Game, player Controller, logger *zap.Logger) *Runner {
	if g == nil {
		panic("sim.NewRunner: game must not be nil")
	}
	if player == nil {
		panic("sim.NewRunner: player must not be nil")
	}
	if logger == nil {
		panic("sim.NewRunner: logger must not be nil")
	}
	return &Runner{g: g, player: player, logger: logger}
}

// Turns returns the number of completed turns.
func (r *Runner) Turns() int { return r.turn }

// Turn plays one turn. Each living character on the current map runs its
// preturn; if it can act it chooses and resolves an intent; then its turn
// ends. When the player travels to another map, the characters left behind
// lose the rest of the turn.
//
// Postcondition: the view and observed map reflect the end of the turn.
func (r *Runner) Turn(ctx context.Context) error {
	g := r.g
	mid := g.GD.CurrentMapID()
	m, ok := g.GD.CurrentMap()
	if !ok {
		return fmt.Errorf("turn %d: no current map", r.turn)
	}
	for _, cid := range m.Charas() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.GD.CurrentMapID() != mid {
			break
		}
		c, ok := g.GD.Roster.Get(cid)
		if !ok || c.Dead {
			continue
		}
		if g.Preturn(cid) {
			if err := r.act(ctx, cid); err != nil {
				return fmt.Errorf("turn %d: %w", r.turn, err)
			}
		}
		g.EndTurn(cid)
	}
	g.UpdateView()
	r.turn++
	return nil
}

func (r *Runner) act(ctx context.Context, cid chara.ID) error {
	g := r.g
	if !cid.IsPlayer() {
		action.Resolve(g, cid, npcai.Decide(g, cid))
		return nil
	}
	step := r.player.Next(g)
	if step.Travels {
		return g.SwitchMap(ctx, step.Travel)
	}
	if !action.Resolve(g, cid, step.Intent) {
		r.logger.Debug("player intent failed", zap.Int("turn", r.turn), zap.String("intent", fmt.Sprintf("%T", step.Intent)))
	}
	return nil
}

// Run plays up to maxTurns turns. It stops early when the player dies or ctx
// is cancelled.
//
// Postcondition: returns the number of turns played in this call.
func (r *Runner) Run(ctx context.Context, maxTurns int) (int, error) {
	start := r.turn
	for r.turn-start < maxTurns {
		if r.g.GD.Player().Dead {
			r.logger.Info("player died", zap.Int("turn", r.turn))
			break
		}
		if err := r.Turn(ctx); err != nil {
			return r.turn - start, err
		}
	}
	played := r.turn - start
	r.logger.Info("simulation finished",
		zap.Int("turns", played),
		zap.Any("map", r.g.GD.CurrentMapID()),
		zap.Int("log_entries", r.g.Log.Len()),
	)
	return played, nil
}
