package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/logging"
	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/parts"
	"github.com/ivlev/showreel/internal/segment"
	"github.com/ivlev/showreel/internal/show"
	"github.com/ivlev/showreel/internal/source"
)

var (
	version    = "dev"
	configPath string
	assetsRoot string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "showreel",
	Short: "Render, play and tune a scripted audiovisual show",
	Long: `showreel drives a show described by a YAML file: segments scheduled on a
timeline, cover fades between them and per-segment parameters persisted as
JSON under the parameters directory.

Without --config the built-in two-part show is used.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the build version reported in logs and reports.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "show file (YAML)")
	rootCmd.PersistentFlags().StringVar(&assetsRoot, "assets", "", "directory relative asset paths are resolved against")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the show file log level")

	rootCmd.AddCommand(exportCmd, playCmd, paramsCmd, cameraCmd)
}

// loadConfig reads the show file or falls back to the built-in show.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(configPath)
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *logging.Logger {
	lc := cfg.Logging
	if logLevel != "" {
		lc.Level = logLevel
	}
	if lc.Output == "" || lc.Output == "stderr" {
		return logging.NewWithWriter(lc, version, cmd.ErrOrStderr())
	}
	return logging.New(lc, version)
}

func newStore(cfg *config.Config, logger *logging.Logger) *params.Store {
	dir := cfg.ParametersDir
	if assetsRoot != "" && dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(assetsRoot, dir)
	}
	return params.NewStore(dir, logger.Logger)
}

func newShow(cfg *config.Config, logger *logging.Logger) *show.Show {
	return show.New(cfg, parts.NewRegistry(),
		show.WithLogger(logger.Logger),
		show.WithAssets(source.NewLoader(assetsRoot)),
		show.WithStore(newStore(cfg, logger)),
	)
}

// buildSegment constructs one segment without initializing it, so its
// parameters can be edited without loading its assets.
func buildSegment(cfg *config.Config, name string) (segment.Segment, error) {
	for _, sc := range cfg.Segments {
		if sc.Name == name {
			return parts.NewRegistry().New(sc)
		}
	}
	return nil, fmt.Errorf("%w: %s", show.ErrUnknownSegment, name)
}

func segmentNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Segments))
	for _, sc := range cfg.Segments {
		names = append(names, sc.Name)
	}
	return names
}
