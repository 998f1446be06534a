//go:build js && wasm

package browser

import (
	"errors"
	"syscall/js"

	"github.com/frinky/devlog/internal/detail"
)

var errImageLoad = errors.New("image failed to load")

// ImageLoader preloads images through an off-screen Image element.
type ImageLoader struct{}

var _ detail.ImageLoader = ImageLoader{}

func (ImageLoader) Load(url string, done func(error)) {
	img := js.Global().Get("Image").New()

	var onLoad, onError js.Func
	finish := func(err error) {
		img.Set("onload", js.Null())
		img.Set("onerror", js.Null())
		onLoad.Release()
		onError.Release()
		done(err)
	}
	onLoad = js.FuncOf(func(this js.Value, args []js.Value) any {
		finish(nil)
		return nil
	})
	onError = js.FuncOf(func(this js.Value, args []js.Value) any {
		finish(errImageLoad)
		return nil
	})

	img.Set("onload", onLoad)
	img.Set("onerror", onError)
	img.Set("src", url)
}
