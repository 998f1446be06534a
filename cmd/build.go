package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the site shell, static assets and share pages",
	Long: `The build command loads games and posts from the content directory,
renders the single-page shell from './layouts/' (or the built-in layouts),
copies './static/', compiles the router client to app.wasm next to
wasm_exec.js, and writes one share page per entry into the output
directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(site.NewBuilder(appConfig, logger))
		return err
	},
}

func runBuildProcess(b *site.Builder) (site.Result, error) {
	logger.Info("starting build",
		zap.String("output", appConfig.OutputDir),
		zap.String("baseURL", appConfig.BaseURL),
	)

	store, err := loadStore()
	if err != nil {
		return site.Result{}, err
	}

	res, err := b.Build(store)
	if err != nil {
		return res, fmt.Errorf("build failed: %w", err)
	}
	logger.Info("build completed",
		zap.Int("entries", res.Entries),
		zap.Int("sharePages", res.SharePages),
	)
	return res, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
