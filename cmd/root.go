package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/prefab/internal/codec"
	"github.com/papapumpkin/prefab/internal/config"
	"github.com/papapumpkin/prefab/internal/logging"
	"github.com/papapumpkin/prefab/internal/prefab"
	"github.com/papapumpkin/prefab/internal/recipe"
)

var rootCmd = &cobra.Command{
	Use:   "prefab",
	Short: "Build, inspect and validate rhythm-game prefabs",
	Long: "prefab builds prefab files from TOML or YAML recipes and reads, validates " +
		"and reformats existing .lsp prefabs.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .prefab.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.Bool("sort-objects", false, "write objects ordered by start time")
	pf.Bool("sort-keyframes", false, "write keyframes ordered by time")
	pf.Bool("cumulative-rotation", false, "write rotation keyframes as cumulative increments")
	pf.String("indent", "", "indent encoded output with this string")

	for key, flag := range map[string]string{
		"verbose":                    "verbose",
		"encode.sort_objects":        "sort-objects",
		"encode.sort_keyframes":      "sort-keyframes",
		"encode.cumulative_rotation": "cumulative-rotation",
		"encode.indent":              "indent",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".prefab")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.SetupEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// env is what every subcommand needs: resolved config, a logger and a
// codec configured from both.
type env struct {
	cfg   config.Config
	log   *logging.Logger
	codec *codec.Codec
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logging.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &env{
		cfg:   cfg,
		log:   log,
		codec: codec.New(cfg.CodecFlags(), codec.WithIndent(cfg.Encode.Indent), codec.WithLogger(log)),
	}, nil
}

func (e *env) validateOptions() []prefab.ValidateOption {
	if e.cfg.Validate.StrictParents {
		return []prefab.ValidateOption{prefab.WithParentChecks()}
	}
	return nil
}

// documentOptions seeds id generation when a seed is configured.
func (e *env) documentOptions() []prefab.Option {
	if e.cfg.Seed != 0 {
		return []prefab.Option{prefab.WithSeed(e.cfg.Seed)}
	}
	return nil
}

// loadDocument reads a recipe or an encoded prefab, chosen by extension.
func (e *env) loadDocument(path string) (*prefab.Document, error) {
	if !recipe.IsRecipe(path) {
		e.log.Debug("decoding prefab", "path", path)
		return e.codec.ReadFile(path)
	}
	e.log.Debug("building recipe", "path", path)
	r, err := recipe.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := recipe.Build(r, e.documentOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
