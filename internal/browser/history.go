//go:build js && wasm

// Package browser adapts the navigation and detail ports to the DOM and
// window.history of the page the client runs in.
package browser

import (
	"syscall/js"

	"github.com/frinky/devlog/internal/nav"
	"github.com/frinky/devlog/internal/route"
)

// History is nav.History over window.history. The encoded route is stored
// as the entry's state object so a pop can be replayed without decoding
// the address bar.
type History struct {
	history js.Value
	window  js.Value
	onPop   js.Func
}

var _ nav.History = (*History)(nil)

func NewHistory() *History {
	window := js.Global().Get("window")
	return &History{window: window, history: window.Get("history")}
}

func (h *History) Push(r route.Route, fragment string) {
	h.history.Call("pushState", fragment, "", "#"+fragment)
}

func (h *History) Replace(r route.Route, fragment string) {
	h.history.Call("replaceState", fragment, "", "#"+fragment)
}

func (h *History) Current() (route.Route, bool) {
	state := h.history.Get("state")
	if state.Type() != js.TypeString {
		return route.Route{}, false
	}
	return route.Decode(state.String()), true
}

// OnPop subscribes fn to popstate. A popstate without our state (a typed
// fragment or a foreign entry) is delivered with the current location hash.
func (h *History) OnPop(fn nav.PopFunc) {
	if h.onPop.Truthy() {
		h.window.Call("removeEventListener", "popstate", h.onPop)
		h.onPop.Release()
	}
	h.onPop = js.FuncOf(func(this js.Value, args []js.Value) any {
		var state *route.Route
		if len(args) > 0 {
			if s := args[0].Get("state"); s.Type() == js.TypeString {
				r := route.Decode(s.String())
				state = &r
			}
		}
		fn(state, Hash())
		return nil
	})
	h.window.Call("addEventListener", "popstate", h.onPop)
}

// Hash is location.hash, including the leading '#'.
func Hash() string {
	return js.Global().Get("location").Get("hash").String()
}
