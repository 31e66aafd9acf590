// Package hooking provides the generic instrumentation primitive threaded
// through the Dynamics debug wrapper, the coordinator's step loop, and the
// observation bus.
package hooking

import "reflect"

// HookPos names a site in the engine where a hook can be invoked.
type HookPos struct {
	Name string
}

var (
	// HookPosDynamicsCall fires around every Dynamics method call when a
	// DebugWrapper is in front of the model.
	HookPosDynamicsCall = &HookPos{Name: "DynamicsCall"}
	// HookPosBeforeStep fires before a coordinator step begins.
	HookPosBeforeStep = &HookPos{Name: "BeforeStep"}
	// HookPosAfterStep fires after a coordinator step completes.
	HookPosAfterStep = &HookPos{Name: "AfterStep"}
	// HookPosObservation fires when a trame is emitted on the observation
	// bus.
	HookPosObservation = &HookPos{Name: "Observation"}
)

// HookCtx is the context passed to a Hook when it is invoked.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accepts Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// Hook is a short piece of program invoked by a Hookable object.
type Hook interface {
	Func(ctx HookCtx)
}

// HookableBase provides a reusable implementation of Hookable.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all registered hooks.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook registers a hook. It panics if the hook is already registered.
// Function hooks such as HookFunc are compared by code pointer, so two
// closures created from the same function literal count as the same hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	hv := reflect.ValueOf(hook)
	for _, existing := range h.hookList {
		ev := reflect.ValueOf(existing)
		same := false
		switch {
		case !ev.IsValid() || !hv.IsValid():
			same = !ev.IsValid() && !hv.IsValid()
		case ev.Type() != hv.Type():
		case ev.Kind() == reflect.Func:
			same = ev.Pointer() == hv.Pointer()
		case ev.Type().Comparable():
			same = existing == hook
		}
		if same {
			panic("hooking: duplicated hook")
		}
	}
}

// InvokeHook triggers all registered hooks with ctx.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func implements Hook.
func (f HookFunc) Func(ctx HookCtx) { f(ctx) }
