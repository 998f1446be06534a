package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Config is the resolved CLI configuration. Values come from viper
// (defaults, config file, DEVLOG_* environment variables).
type Config struct {
	SiteTitle    string `mapstructure:"siteTitle"`
	BaseURL      string `mapstructure:"baseURL"`
	ContentDir   string `mapstructure:"contentDir"`
	LayoutsDir   string `mapstructure:"layoutsDir"`
	StaticDir    string `mapstructure:"staticDir"`
	OutputDir    string `mapstructure:"outputDir"`
	DefaultImage string `mapstructure:"defaultImage"`
	Icon         string `mapstructure:"icon"`
	LogLevel     string `mapstructure:"logLevel"`
	LogFormat    string `mapstructure:"logFormat"`

	// ClientPackage is compiled to app.wasm unless WasmFile names a
	// prebuilt binary. WasmExecFile defaults to the Go installation's copy.
	ClientPackage string `mapstructure:"clientPackage"`
	WasmFile      string `mapstructure:"wasmFile"`
	WasmExecFile  string `mapstructure:"wasmExecFile"`
}

// Validate reports configuration that would produce a broken build.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ContentDir) == "" {
		errs = append(errs, errors.New("contentDir must be set"))
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("outputDir must be set"))
	}
	if strings.TrimSpace(c.ClientPackage) == "" && strings.TrimSpace(c.WasmFile) == "" {
		errs = append(errs, errors.New("one of clientPackage or wasmFile must be set"))
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("baseURL %q must be an absolute URL", c.BaseURL))
		}
	}
	return errors.Join(errs...)
}

// SiteURL returns the base URL without a trailing slash.
func (c Config) SiteURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// AbsoluteURL resolves ref against the base URL. Refs that are already
// absolute are returned unchanged.
func (c Config) AbsoluteURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return c.SiteURL() + "/" + strings.TrimLeft(ref, "/")
}
