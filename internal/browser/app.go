//go:build js && wasm

package browser

import (
	"errors"
	"strings"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/content"
	"github.com/frinky/devlog/internal/detail"
	"github.com/frinky/devlog/internal/logging"
	"github.com/frinky/devlog/internal/model"
	"github.com/frinky/devlog/internal/nav"
)

// ContentElementID is the script element holding the content snapshot.
const ContentElementID = "site-content"

var errNoContent = errors.New("content snapshot element not found")

// App is the running page: the controller plus its DOM listeners.
type App struct {
	Controller *nav.Controller
	Store      *content.Store

	logger  *zap.Logger
	onClick js.Func
}

// LoadContent reads the snapshot embedded in the page.
func LoadContent() (*content.Store, error) {
	el := document().Call("getElementById", ContentElementID)
	if !el.Truthy() {
		return nil, errNoContent
	}
	return content.ReadJSON(strings.NewReader(el.Get("textContent").String()))
}

// Start wires the controller to the page and routes the current fragment.
func Start(store *content.Store, logger *zap.Logger) *App {
	logger = logging.OrNop(logger)
	presenter := detail.NewPresenter(Surface{}, ImageLoader{}, logger)
	ctrl := nav.New(store, Sections{}, presenter, NewHistory(), nav.WithLogger(logger))

	app := &App{Controller: ctrl, Store: store, logger: logger}
	app.showFeatured()
	app.listen()

	r := ctrl.Start(Hash())
	logger.Debug("router started", zap.String("route", r.String()))
	return app
}

func (a *App) showFeatured() {
	featured := a.Store.Featured()
	if featured == nil {
		return
	}
	detail.NewHero(ImageLoader{}, FeatureSink, a.logger).Set(featured.Image)
}

// listen routes clicks on nav links and list items through the controller
// with a single delegated handler.
func (a *App) listen() {
	a.onClick = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		event := args[0]
		target := event.Get("target")
		if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
			return nil
		}

		if link := target.Call("closest", "[data-nav]"); link.Truthy() {
			event.Call("preventDefault")
			a.Controller.OpenSection(link.Get("dataset").Get("nav").String())
			return nil
		}
		if item := target.Call("closest", "[data-kind][data-slug]"); item.Truthy() {
			data := item.Get("dataset")
			kind, err := model.ParseKind(data.Get("kind").String())
			if err != nil {
				a.logger.Debug("ignoring click on unknown kind", zap.Error(err))
				return nil
			}
			event.Call("preventDefault")
			a.Controller.OpenDetail(kind, data.Get("slug").String())
		}
		return nil
	})
	document().Call("addEventListener", "click", a.onClick)
}

// Close removes the click listener.
func (a *App) Close() {
	document().Call("removeEventListener", "click", a.onClick)
	a.onClick.Release()
}
