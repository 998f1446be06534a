package detail

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/logging"
)

// HeroState is what a hero slot displays. An empty Image means the
// neutral placeholder background.
type HeroState struct {
	Image   string
	Loading bool
}

// Placeholder is the state shown for a missing or failed image.
var Placeholder = HeroState{}

// ImageLoader fetches an image and calls done exactly once, possibly from
// another goroutine or a later event-loop turn.
type ImageLoader interface {
	Load(url string, done func(err error))
}

// HeroSink applies a hero state to the display.
type HeroSink func(HeroState)

// Hero guards one hero slot against stale image completions: every Set
// mints a new token and only the completion holding the current token
// may change the display.
type Hero struct {
	loader ImageLoader
	sink   HeroSink
	logger *zap.Logger

	mu    sync.Mutex
	token uint64
}

// NewHero creates a hero slot. A nil loader shows images immediately.
func NewHero(loader ImageLoader, sink HeroSink, logger *zap.Logger) *Hero {
	return &Hero{loader: loader, sink: sink, logger: logging.OrNop(logger)}
}

// Set starts showing image. It returns without waiting for the load.
func (h *Hero) Set(image string) {
	image = strings.TrimSpace(image)

	h.mu.Lock()
	h.token++
	token := h.token
	h.mu.Unlock()

	if image == "" {
		h.sink(Placeholder)
		return
	}
	if h.loader == nil {
		h.sink(HeroState{Image: image})
		return
	}

	h.sink(HeroState{Loading: true})
	h.loader.Load(image, func(err error) {
		h.mu.Lock()
		defer h.mu.Unlock()
		if token != h.token {
			return
		}
		if err != nil {
			h.logger.Debug("hero image failed to load", zap.String("image", image), zap.Error(err))
			h.sink(Placeholder)
			return
		}
		h.sink(HeroState{Image: image})
	})
}

// Token is the current generation, for diagnostics and tests.
func (h *Hero) Token() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token
}
