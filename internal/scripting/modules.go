package scripting

import (
	"errors"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/gamedata"
)

// RegisterModules registers the engine.* and game.* Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine and game globals are defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.newLogModule(L))
	L.SetField(engine, "dice", m.newDiceModule(L))
	L.SetGlobal("engine", engine)
	L.SetGlobal("game", m.newGameModule(L))
}

func (m *Manager) newLogModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, fn := range levels {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func (m *Manager) newDiceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		res, err := m.roller.RollExpr(L.CheckString(1))
		if err != nil {
			L.RaiseError("engine.dice.roll: %s", err.Error())
			return 0
		}
		t := L.NewTable()
		L.SetField(t, "total", lua.LNumber(res.Total()))
		L.SetField(t, "modifier", lua.LNumber(res.Modifier))
		dice := L.NewTable()
		for _, d := range res.Dice {
			dice.Append(lua.LNumber(d))
		}
		L.SetField(t, "dice", dice)
		L.Push(t)
		return 1
	}))
	return mod
}

func (m *Manager) newGameModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "has_item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		if m.Methods.HasItem == nil {
			L.Push(lua.LFalse)
			return 1
		}
		L.Push(lua.LBool(m.Methods.HasItem(id)))
		return 1
	}))
	L.SetField(mod, "gen_dungeons", L.NewFunction(func(L *lua.LState) int {
		n := 0
		if m.Methods.GenDungeons != nil {
			n = m.Methods.GenDungeons()
		}
		L.Push(lua.LNumber(n))
		return 1
	}))
	L.SetField(mod, "receive_quest_rewards", L.NewFunction(func(L *lua.LState) int {
		n := 0
		if m.Methods.ReceiveQuestRewards != nil {
			n = m.Methods.ReceiveQuestRewards()
		}
		L.Push(lua.LNumber(n))
		return 1
	}))
	L.SetField(mod, "receive_item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		n := L.OptInt(2, 1)
		return m.pushResult(L, "receive_item", m.Methods.ReceiveItem, id, n)
	}))
	L.SetField(mod, "receive_money", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckInt64(1)
		if m.Methods.ReceiveMoney != nil {
			m.Methods.ReceiveMoney(amount)
		}
		return 0
	}))
	L.SetField(mod, "remove_item", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		n := L.OptInt(2, 1)
		return m.pushResult(L, "remove_item", m.Methods.RemoveItem, id, n)
	}))
	return mod
}

// pushResult calls fn and pushes true, or false and an error message.
func (m *Manager) pushResult(L *lua.LState, name string, fn func(string, int) error, id string, n int) int {
	err := errNilMethod
	if fn != nil {
		err = fn(id, n)
	}
	if err == nil {
		L.Push(lua.LTrue)
		return 1
	}
	m.logger.Debug("scripted game call failed",
		zap.String("fn", name),
		zap.String("item", id),
		zap.Int("n", n),
		zap.Error(err),
	)
	L.Push(lua.LFalse)
	if errors.Is(err, gamedata.ErrItemNotFound) {
		L.Push(lua.LString(errNotFoundMessage))
	} else {
		L.Push(lua.LString(err.Error()))
	}
	return 2
}

// errNotFoundMessage is the message remove_item returns for a missing item.
const errNotFoundMessage = "not found"

var errNilMethod = errors.New("not available")
