package site

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Client asset names referenced by base.html.
const (
	WasmFile     = "app.wasm"
	WasmExecFile = "wasm_exec.js"
)

// wasmExecDirs are the locations of wasm_exec.js inside GOROOT; Go 1.24
// moved it from misc/wasm to lib/wasm.
var wasmExecDirs = []string{"lib/wasm", "misc/wasm"}

type clientAssets struct {
	wasm     []byte
	wasmExec []byte
}

// loadClient resolves the router binary and its loader script. It runs
// before the output directory is cleaned, so a prebuilt wasm inside the
// output tree survives the rebuild.
func (b *Builder) loadClient() (clientAssets, error) {
	var assets clientAssets

	wasm, err := b.clientBinary()
	if err != nil {
		return assets, err
	}
	assets.wasm = wasm

	execPath := b.cfg.WasmExecFile
	if execPath == "" {
		goroot, err := b.goroot()
		if err != nil {
			return assets, fmt.Errorf("failed to locate GOROOT: %w", err)
		}
		if execPath, err = findWasmExec(goroot); err != nil {
			return assets, err
		}
	}
	if assets.wasmExec, err = os.ReadFile(execPath); err != nil {
		return assets, fmt.Errorf("failed to read %s: %w", WasmExecFile, err)
	}
	return assets, nil
}

// clientBinary returns the prebuilt wasm, or compiles the client package
// once per Builder.
func (b *Builder) clientBinary() ([]byte, error) {
	if b.cfg.WasmFile != "" {
		wasm, err := os.ReadFile(b.cfg.WasmFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read wasm file: %w", err)
		}
		return wasm, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.compiled != nil {
		return b.compiled, nil
	}

	dir, err := os.MkdirTemp("", "devlog-client-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, WasmFile)
	b.logger.Info("compiling client", zap.String("package", b.cfg.ClientPackage))
	if err := b.compile(b.cfg.ClientPackage, out); err != nil {
		return nil, fmt.Errorf("failed to compile client %s: %w", b.cfg.ClientPackage, err)
	}
	wasm, err := os.ReadFile(out)
	if err != nil {
		return nil, err
	}
	b.compiled = wasm
	return wasm, nil
}

func (b *Builder) writeClient(outDir string, assets clientAssets) error {
	for name, data := range map[string][]byte{WasmFile: assets.wasm, WasmExecFile: assets.wasmExec} {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

func goBuildWasm(pkg, out string) error {
	cmd := exec.Command("go", "build", "-trimpath", "-o", out, pkg)
	cmd.Env = append(os.Environ(), "GOOS=js", "GOARCH=wasm")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", err, bytes.TrimSpace(output))
	}
	return nil
}

func goRoot() (string, error) {
	if root := os.Getenv("GOROOT"); root != "" {
		return root, nil
	}
	out, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		return "", err
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", errors.New("go env GOROOT is empty")
	}
	return root, nil
}

func findWasmExec(goroot string) (string, error) {
	for _, dir := range wasmExecDirs {
		path := filepath.Join(goroot, filepath.FromSlash(dir), WasmExecFile)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s not found under %s", WasmExecFile, goroot)
}
