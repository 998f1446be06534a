package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/frinky/devlog/internal/config"
	"github.com/frinky/devlog/internal/content"
	"github.com/frinky/devlog/internal/logging"
)

var (
	cfgFile   string
	appConfig config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "devlog builds and serves a single-page portfolio site",
	Long: `devlog reads games and posts from the content directory, builds the
single-page site shell with its hash router, and writes one social-preview
redirect page per entry.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("content", "", "content directory (default \"content\")")
	rootCmd.PersistentFlags().String("output", "", "output directory (default \"public\")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("siteTitle", "Frinky")
	v.SetDefault("baseURL", "")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "public")
	v.SetDefault("defaultImage", "images/frog.png")
	v.SetDefault("icon", "/images/frog.png")
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", "console")
	v.SetDefault("clientPackage", "./client")
	v.SetDefault("wasmFile", "")
	v.SetDefault("wasmExecFile", "")

	flags := cmd.Flags()
	for key, flag := range map[string]string{"contentDir": "content", "outputDir": "output", "logLevel": "log-level"} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DEVLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configErr := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if configErr != nil && (cfgFile != "" || !errors.As(configErr, &notFound)) {
		return fmt.Errorf("failed to read config file: %w", configErr)
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}

	l, err := logging.New(logging.Options{Level: appConfig.LogLevel, Format: appConfig.LogFormat})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logger = l

	if configErr == nil {
		logger.Info("using config file", zap.String("path", v.ConfigFileUsed()))
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}
	return nil
}

func loadStore() (*content.Store, error) {
	store, err := content.Load(appConfig.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	logger.Info("content loaded",
		zap.String("dir", appConfig.ContentDir),
		zap.Int("games", len(store.Games())),
		zap.Int("posts", len(store.Posts())),
	)
	return store, nil
}
