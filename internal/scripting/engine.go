package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/skills/internal/skills"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding optional formula overrides.
// Single-goroutine access only (game loop). Any function a script does not
// define, or that errors, falls back to the built-in Go formula.
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback skills.Builtin
}

// NewEngine creates a Lua engine and loads every script under
// scriptsDir/skills. A missing directory yields an engine with no overrides.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(filepath.Join(scriptsDir, "skills")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load skill scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString is used by tests and tools to load inline Lua.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

func (e *Engine) Close() { e.vm.Close() }

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no overrides
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Defines reports whether a script provides the named global function.
func (e *Engine) Defines(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// callNumber calls a global Lua function with numeric args and one numeric
// result. ok is false when the function is missing or fails.
func (e *Engine) callNumber(name string, args ...float64) (float64, bool) {
	fn, isFn := e.vm.GetGlobal(name).(*lua.LFunction)
	if !isFn {
		return 0, false
	}
	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = lua.LNumber(a)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, largs...); err != nil {
		e.log.Error("lua call failed", zap.String("fn", name), zap.Error(err))
		return 0, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	n, isNum := ret.(lua.LNumber)
	if !isNum {
		e.log.Error("lua function returned non-number", zap.String("fn", name), zap.String("type", ret.Type().String()))
		return 0, false
	}
	return float64(n), true
}

// DodgeDamage calls calc_dodge_damage(damage, modifier).
func (e *Engine) DodgeDamage(damage, modifier float64) float64 {
	if v, ok := e.callNumber("calc_dodge_damage", damage, modifier); ok {
		return v
	}
	return e.fallback.DodgeDamage(damage, modifier)
}

// RollDamage calls calc_roll_damage(damage, threshold).
func (e *Engine) RollDamage(damage, threshold float64) float64 {
	if v, ok := e.callNumber("calc_roll_damage", damage, threshold); ok {
		return v
	}
	return e.fallback.RollDamage(damage, threshold)
}

// XPToLevel calls xp_to_level(level).
func (e *Engine) XPToLevel(level int) float64 {
	if v, ok := e.callNumber("xp_to_level", float64(level)); ok {
		return v
	}
	return e.fallback.XPToLevel(level)
}
