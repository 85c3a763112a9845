// Package cli implements the memoryvault commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/memoryvault/internal/config"
	"github.com/agenthands/memoryvault/internal/core"
	"github.com/agenthands/memoryvault/internal/llm"
	"github.com/agenthands/memoryvault/internal/store"
)

var configPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "memoryvault",
	Short: "Personal memory journal with year and theme inference",
	Long: "memoryvault stores free-text memories, enriches them with a local LLM " +
		"and groups them by decade and theme.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $CONFIG_PATH or config/config.toml)")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "config/config.toml"
}

// loadConfig reads .env, the TOML file and environment overrides, in that
// order of increasing precedence.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(getConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// app is everything a command needs, built from the configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  store.Store
	vault  *core.Vault
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	llmClient, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("init llm: %w", err)
	}

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	v := core.NewVault(st, llmClient, embedder, cfg.Prompts)
	v.YearModel = cfg.LLM.YearModel
	v.Logger = logger

	return &app{cfg: cfg, logger: logger, store: st, vault: v}, nil
}

func (a *app) close() {
	if err := a.store.Close(context.Background()); err != nil {
		a.logger.Warn("close store", "error", err)
	}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// birthYearFlag resolves the birth year: flag, then USER_BIRTH_YEAR (already
// folded into the config), then the configured default.
func birthYearFlag(cmd *cobra.Command, cfg *config.Config) int {
	if cmd.Flags().Changed("birth-year") {
		y, _ := cmd.Flags().GetInt("birth-year")
		return y
	}
	return cfg.Backfill.BirthYear
}
