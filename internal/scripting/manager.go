package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ruins/internal/game/dice"
)

// Hook names invoked by the game.
const (
	HookEnterSite    = "on_enter_site"
	HookFloorCreated = "on_floor_created"
)

// Methods are the game operations callable from Lua through the game table.
// A nil field makes the matching Lua function a no-op returning a zero value.
type Methods struct {
	HasItem             func(id string) bool
	GenDungeons         func() int
	ReceiveQuestRewards func() int
	ReceiveItem         func(id string, n int) error
	ReceiveMoney        func(amount int64)
	RemoveItem          func(id string, n int) error
}

// Manager owns the single sandboxed LState that runs every scripted event.
//
// Manager is safe for concurrent use; every Lua execution is serialized by mu.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	cancel    func()
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger

	// Methods is read at call time, so it may be injected after LoadDir.
	Methods Methods
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager; CallHook is a no-op until LoadDir succeeds.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil || logger == nil {
		panic("scripting.NewManager: roller and logger must be non-nil")
	}
	return &Manager{roller: roller, logger: logger}
}

// LoadDir creates a fresh sandboxed VM, registers the engine and game tables,
// then executes every *.lua file in scriptDir in lexicographic order. A
// previously loaded VM is replaced only when every file loads.
//
// Precondition: scriptDir must be a readable directory; instLimit >= 0.
// Postcondition: returns an error wrapping the failing path on load failure.
func (m *Manager) LoadDir(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
		cancel()
		cancel = ArmLimit(L, instLimit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
	m.L = L
	m.cancel = cancel
	m.instLimit = instLimit
	m.logger.Info("scripts loaded", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// CallHook calls the named Lua global function with a fresh instruction budget.
// Returns (LNil, nil) when no scripts are loaded or the hook is not defined.
// Lua runtime errors are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.L == nil {
		m.logger.Debug("scripting: no scripts loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}

	fn := m.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = ArmLimit(m.L, m.instLimit)

	if err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret, nil
}

// OnEnterSite runs the on_enter_site hook with the site name.
func (m *Manager) OnEnterSite(siteName string) {
	_, _ = m.CallHook(HookEnterSite, lua.LString(siteName))
}

// OnFloorCreated runs the on_floor_created hook with the site name and floor.
func (m *Manager) OnFloorCreated(siteName string, floor int) {
	_, _ = m.CallHook(HookFloorCreated, lua.LString(siteName), lua.LNumber(floor))
}

// Close releases the VM. The Manager may be reloaded with LoadDir afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}
