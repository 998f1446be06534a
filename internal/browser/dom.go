//go:build js && wasm

package browser

import (
	"fmt"
	"syscall/js"

	"github.com/frinky/devlog/internal/detail"
)

const (
	sectionPrefix = "section-"
	hiddenClass   = "hidden"
	activeClass   = "active"
)

func document() js.Value { return js.Global().Get("document") }

func query(selector string) js.Value {
	return document().Call("querySelector", selector)
}

func queryAll(selector string, fn func(js.Value)) {
	nodes := document().Call("querySelectorAll", selector)
	for i := 0; i < nodes.Length(); i++ {
		fn(nodes.Index(i))
	}
}

func toggleClass(el js.Value, class string, on bool) {
	if el.Truthy() {
		el.Get("classList").Call("toggle", class, on)
	}
}

// Sections shows one .page-section at a time and marks the matching
// [data-nav] links active.
type Sections struct{}

func (Sections) ShowSection(id string) {
	target := sectionPrefix + id
	queryAll(".page-section", func(el js.Value) {
		toggleClass(el, hiddenClass, el.Get("id").String() != target)
	})
	queryAll("[data-nav]", func(el js.Value) {
		toggleClass(el, activeClass, el.Get("dataset").Get("nav").String() == id)
	})
	js.Global().Get("window").Call("scrollTo", 0, 0)
}

// Surface writes detail views into the #section-detail elements.
type Surface struct{}

func (Surface) ShowView(v detail.View) {
	if el := query(".detail-title"); el.Truthy() {
		el.Set("textContent", v.Title)
	}
	if el := query(".detail-meta"); el.Truthy() {
		el.Set("textContent", v.Meta)
	}
	if el := query("#detail-body"); el.Truthy() {
		el.Set("innerHTML", detail.HTML(v.Body))
	}
	if el := query(".detail-download"); el.Truthy() {
		el.Set("href", v.DownloadURL)
		toggleClass(el, hiddenClass, v.DownloadURL == "")
	}
}

func (Surface) ShowHero(h detail.HeroState) {
	applyHero(query(".detail-hero"), h)
}

// FeatureSink renders hero states onto the home page feature window.
func FeatureSink(h detail.HeroState) {
	applyHero(query(".feature-window"), h)
}

func applyHero(el js.Value, h detail.HeroState) {
	if !el.Truthy() {
		return
	}
	style := el.Get("style")
	if h.Image != "" {
		style.Set("backgroundImage", fmt.Sprintf("url(%q)", h.Image))
	} else {
		style.Set("backgroundImage", "")
	}
	toggleClass(el, "placeholder", h.Image == "")
	toggleClass(el, "loading", h.Loading)
	if spinner := el.Call("querySelector", ".detail-spinner"); spinner.Truthy() {
		toggleClass(spinner, hiddenClass, !h.Loading)
	}
}
