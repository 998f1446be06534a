package nav

import "github.com/frinky/devlog/internal/route"

// PopFunc receives back/forward notifications. state is the route stored
// with the history entry, or nil when the entry carries none and fragment
// must be decoded instead.
type PopFunc func(state *route.Route, fragment string)

// History is the platform back/forward stack. Only the Controller writes to it.
type History interface {
	// Push adds an entry after the current one, dropping any forward entries.
	Push(r route.Route, fragment string)
	// Replace overwrites the current entry.
	Replace(r route.Route, fragment string)
	// Current reports the route stored with the current entry.
	Current() (route.Route, bool)
	// OnPop registers the pop listener.
	OnPop(fn PopFunc)
}

type memoryEntry struct {
	state    *route.Route
	fragment string
}

// MemoryHistory is an in-process History. Back and Forward move the cursor
// and deliver a pop notification the way a browser does.
type MemoryHistory struct {
	entries []memoryEntry
	index   int
	onPop   PopFunc
	pushes  int
}

// NewMemoryHistory starts with one stateless entry for the initial fragment.
func NewMemoryHistory(initialFragment string) *MemoryHistory {
	return &MemoryHistory{entries: []memoryEntry{{fragment: initialFragment}}}
}

func (h *MemoryHistory) Push(r route.Route, fragment string) {
	h.entries = append(h.entries[:h.index+1], memoryEntry{state: &r, fragment: fragment})
	h.index = len(h.entries) - 1
	h.pushes++
}

func (h *MemoryHistory) Replace(r route.Route, fragment string) {
	h.entries[h.index] = memoryEntry{state: &r, fragment: fragment}
}

func (h *MemoryHistory) Current() (route.Route, bool) {
	e := h.entries[h.index]
	if e.state == nil {
		return route.Route{}, false
	}
	return *e.state, true
}

func (h *MemoryHistory) OnPop(fn PopFunc) { h.onPop = fn }

// Back moves one entry back. It reports false at the start of the stack.
func (h *MemoryHistory) Back() bool { return h.Go(-1) }

// Forward moves one entry forward. It reports false at the end of the stack.
func (h *MemoryHistory) Forward() bool { return h.Go(1) }

// Go moves the cursor by delta and notifies the pop listener.
func (h *MemoryHistory) Go(delta int) bool {
	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		return false
	}
	h.index = next
	if h.onPop != nil {
		e := h.entries[next]
		var state *route.Route
		if e.state != nil {
			s := *e.state
			state = &s
		}
		h.onPop(state, e.fragment)
	}
	return true
}

// Len is the number of entries in the stack.
func (h *MemoryHistory) Len() int { return len(h.entries) }

// Pushes counts Push calls since creation.
func (h *MemoryHistory) Pushes() int { return h.pushes }

// Fragments lists the stored fragments, oldest first.
func (h *MemoryHistory) Fragments() []string {
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.fragment
	}
	return out
}

// Index is the position of the current entry.
func (h *MemoryHistory) Index() int { return h.index }
