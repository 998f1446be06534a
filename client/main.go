//go:build js && wasm

// Command client is the in-page router. devlog build compiles it to
// app.wasm; set wasmFile in config.yaml to ship a prebuilt binary instead.
package main

import (
	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/browser"
	"github.com/frinky/devlog/internal/logging"
)

func main() {
	logger, err := logging.New(logging.Options{Level: "info", Format: "console"})
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	store, err := browser.LoadContent()
	if err != nil {
		logger.Error("failed to load content", zap.Error(err))
		return
	}
	browser.Start(store, logger)

	select {}
}
