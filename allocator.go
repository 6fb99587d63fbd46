package rb2d

// Allocator is the type-erased scratch-memory hook a World resets once
// per step. The four concrete memory strategies a full deployment might
// plug in here — linear, pool, free-list, and a general-purpose default —
// are out-of-scope external collaborators; the core depends
// only on this interface and the contract that Reset invalidates
// everything allocated through it since the previous Reset.
//
// A linear allocator is the expected common case: its Reset is a single
// bump-pointer rewind with no per-object destructor calls, which is why
// only POD scratch data (candidate pairs, narrow-phase entries, island
// bookkeeping) is meant to live behind this interface, never anything
// holding its own finalizer-like cleanup.
type Allocator interface {
	Reset()
}

// defaultAllocator is the Allocator a World uses when Settings.Allocator
// is left nil: the core's own per-step scratch slices (contacts,
// manifolds) are already truncated and reused in place by
// their owning structs, so a World never strictly depends on a
// caller-supplied Allocator to function correctly. It exists so every
// World has a non-nil Allocator to call Reset on, for callers that do
// park their own scratch data behind this hook.
type defaultAllocator struct{}

func (defaultAllocator) Reset() {}
