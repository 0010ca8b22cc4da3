package game

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/gamedata"
	"github.com/cory-johannsen/ruins/internal/game/gamelog"
	"github.com/cory-johannsen/ruins/internal/scripting"
)

// HasItem reports whether the player carries an item with id.
func (g *Game) HasItem(id string) bool {
	p := g.GD.Player()
	return p != nil && p.Items.CountObj(id) > 0
}

// ReceiveItem generates n copies of catalog item id into the player's inventory.
func (g *Game) ReceiveItem(id string, n int) error {
	if n < 1 {
		return fmt.Errorf("receiving %q: count must be positive, got %d", id, n)
	}
	it, err := g.Items.FromID(id)
	if err != nil {
		return fmt.Errorf("receiving %q: %w", id, err)
	}
	p := g.GD.Player()
	p.Items.Append(it, n)
	g.Log.Append("player-receive-item",
		gamelog.A("chara", p.Name),
		gamelog.A("item", id),
		gamelog.A("n", strconv.Itoa(n)),
	)
	p.Update(g.Rules)
	return nil
}

// ReceiveMoney adds amount to the player's purse.
func (g *Game) ReceiveMoney(amount int64) {
	g.GD.Money += amount
	g.Log.Append("player-receive-money",
		gamelog.A("chara", g.GD.Player().Name),
		gamelog.A("amount", strconv.FormatInt(amount, 10)),
	)
}

// RemoveItemByID takes n items with id out of the player's inventory, across
// stacks if needed.
//
// Postcondition: returns an error wrapping gamedata.ErrItemNotFound and removes
// nothing when the player holds fewer than n.
func (g *Game) RemoveItemByID(id string, n int) error {
	p := g.GD.Player()
	if n < 1 || p.Items.CountObj(id) < n {
		return fmt.Errorf("removing %d of %q: %w", n, id, gamedata.ErrItemNotFound)
	}
	for n > 0 {
		loc, err := g.GD.PlayerItemLocation(id)
		if err != nil {
			return err
		}
		s, err := g.GD.Item(loc)
		if err != nil {
			return err
		}
		take := min(s.Count, n)
		if _, err := g.GD.RemoveItemAndGet(loc, take); err != nil {
			return err
		}
		n -= take
	}
	p.Update(g.Rules)
	return nil
}

// ReceiveQuestRewards pays out every completed quest and removes it.
//
// Postcondition: returns the number of quests rewarded.
func (g *Game) ReceiveQuestRewards() int {
	var open []gamedata.Quest
	paid := 0
	for _, q := range g.GD.Quests {
		if !q.Completed {
			open = append(open, q)
			continue
		}
		if q.Reward.Money != 0 {
			g.ReceiveMoney(q.Reward.Money)
		}
		for _, ri := range q.Reward.Items {
			if err := g.ReceiveItem(ri.ID, ri.N); err != nil {
				g.Logger.Warn("paying quest reward", zap.String("quest", q.ID), zap.Error(err))
			}
		}
		g.Log.Append("quest-rewarded", gamelog.A("quest", q.ID))
		paid++
	}
	g.GD.Quests = open
	return paid
}

// ScriptMethods returns the game operations exposed to Lua.
func (g *Game) ScriptMethods() scripting.Methods {
	return scripting.Methods{
		HasItem: g.HasItem,
		GenDungeons: func() int {
			return g.GenDungeonMax(g.GD.CurrentMapID().Region())
		},
		ReceiveQuestRewards: g.ReceiveQuestRewards,
		ReceiveItem:         g.ReceiveItem,
		ReceiveMoney:        g.ReceiveMoney,
		RemoveItem:          g.RemoveItemByID,
	}
}
