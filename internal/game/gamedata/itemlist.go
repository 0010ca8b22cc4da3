package gamedata

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/ruins/internal/game/chara"
	"github.com/cory-johannsen/ruins/internal/game/gamemap"
	"github.com/cory-johannsen/ruins/internal/game/geom"
	"github.com/cory-johannsen/ruins/internal/game/item"
)

// ErrItemNotFound is returned when an item location or id resolves to nothing.
var ErrItemNotFound = errors.New("item not found")

// ItemListID names an item container.
type ItemListID interface {
	isItemListID()
}

// CharaList is a character's inventory.
type CharaList struct{ Chara chara.ID }

// OnMap is the pile of items on one tile.
type OnMap struct {
	Map gamemap.MapID
	Pos geom.Vec2d
}

// ShopList is a shop's stock.
type ShopList struct{ Shop string }

func (CharaList) isItemListID() {}
func (OnMap) isItemListID()     {}
func (ShopList) isItemListID()  {}

// ItemLocation addresses one stack inside a container.
type ItemLocation struct {
	List  ItemListID
	Index int
}

type shop struct {
	items item.List
}

// AddShop creates an empty shop named id, or returns the existing one's stock.
func (gd *GameData) AddShop(id string) *item.List {
	s, ok := gd.shops[id]
	if !ok {
		s = &shop{}
		gd.shops[id] = s
	}
	return &s.items
}

// ItemList resolves lid to its container.
func (gd *GameData) ItemList(lid ItemListID) (*item.List, error) {
	switch l := lid.(type) {
	case CharaList:
		c, err := gd.Chara(l.Chara)
		if err != nil {
			return nil, err
		}
		return &c.Items, nil
	case OnMap:
		m, ok := gd.Map(l.Map)
		if !ok {
			return nil, fmt.Errorf("%+v: %w", l.Map, ErrMapNotFound)
		}
		if !m.InBounds(l.Pos) {
			return nil, fmt.Errorf("tile %v: %w", l.Pos, ErrItemNotFound)
		}
		return &m.Tile(l.Pos).Items, nil
	case ShopList:
		s, ok := gd.shops[l.Shop]
		if !ok {
			return nil, fmt.Errorf("shop %q: %w", l.Shop, ErrItemNotFound)
		}
		return &s.items, nil
	default:
		panic(fmt.Sprintf("gamedata: unhandled item list id %T", lid))
	}
}

// Item returns a copy of the stack at loc without removing it.
func (gd *GameData) Item(loc ItemLocation) (item.Stack, error) {
	l, err := gd.ItemList(loc.List)
	if err != nil {
		return item.Stack{}, err
	}
	s, ok := l.Get(loc.Index)
	if !ok {
		return item.Stack{}, fmt.Errorf("index %d: %w", loc.Index, ErrItemNotFound)
	}
	return s, nil
}

// RemoveItemAndGet takes n copies out of the stack at loc.
//
// Postcondition: on error nothing is removed.
func (gd *GameData) RemoveItemAndGet(loc ItemLocation, n int) (item.Item, error) {
	l, err := gd.ItemList(loc.List)
	if err != nil {
		return item.Item{}, err
	}
	it, ok := l.RemoveAndGet(loc.Index, n)
	if !ok {
		return item.Item{}, fmt.Errorf("remove %d at index %d: %w", n, loc.Index, ErrItemNotFound)
	}
	return it, nil
}

// AppendItem adds n copies of it to the container lid.
func (gd *GameData) AppendItem(lid ItemListID, it item.Item, n int) error {
	l, err := gd.ItemList(lid)
	if err != nil {
		return err
	}
	l.Append(it, n)
	return nil
}

// MoveItem transfers n copies from src to dst.
//
// Postcondition: the total count across both containers is unchanged; on error
// neither container changes.
func (gd *GameData) MoveItem(src ItemLocation, dst ItemListID, n int) error {
	to, err := gd.ItemList(dst)
	if err != nil {
		return err
	}
	it, err := gd.RemoveItemAndGet(src, n)
	if err != nil {
		return err
	}
	to.Append(it, n)
	return nil
}

// PlayerItemLocation finds the first stack of objID in the player's inventory.
func (gd *GameData) PlayerItemLocation(objID string) (ItemLocation, error) {
	p := gd.Player()
	if p == nil {
		return ItemLocation{}, ErrCharaNotFound
	}
	i, ok := p.Items.Find(objID)
	if !ok {
		return ItemLocation{}, fmt.Errorf("%q: %w", objID, ErrItemNotFound)
	}
	return ItemLocation{List: CharaList{Chara: chara.Player}, Index: i}, nil
}
