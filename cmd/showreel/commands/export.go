package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/engine"
	"github.com/ivlev/showreel/internal/logging"
	"github.com/ivlev/showreel/internal/system"
	"github.com/ivlev/showreel/internal/video"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every frame of the show",
	Long: `Render frames 0..duration*fps at t = frame/fps and either stream them to
ffmpeg as raw RGBA or write a PNG sequence.

Example:
  showreel export -c show.yaml --output output/show.mp4 --audio latest
  showreel export --frames output/frames --workers 8`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.String("output", "", "video file (default output/<title>_<timestamp>.mp4)")
	f.String("frames", "", "write a PNG sequence into this directory instead of a video")
	f.String("audio", "", `audio track to mux; "latest" picks the newest file in input/audio`)
	f.Int("workers", 0, "PNG encoder workers (default from the show file)")
	f.String("encoder", "", `ffmpeg video encoder; "auto" probes for hardware encoders`)
	f.Int("quality", 0, "encoder quality (x264/NVENC: CRF/CQ, VideoToolbox: bitrate = Q*100 kbit/s)")
	f.Bool("stats", false, "print a performance report and append it to benchmark.log")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyExportFlags(cmd, cfg); err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := newShow(cfg, logger)
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("show startup failed: %w", err)
	}

	pool := system.NewFramePool()
	sink, err := openSink(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}

	frames := cfg.FrameCount()
	exp := &engine.Exporter{
		Show:   s,
		Sink:   sink,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Frames: frames,
		Pool:   pool,
		Logger: logger.Logger,
		Build:  version,
		Stats:  cfg.Export.ShowStats,
	}
	exp.Progress = func(done, total int) {
		if done%cfg.FPS == 0 || done == total {
			logger.Debug("export progress", "frame", done, "of", total)
		}
	}

	report, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.Export.ShowStats {
		fmt.Fprint(cmd.OutOrStdout(), report.String())
		input := configPath
		if input == "" {
			input = cfg.Title
		}
		if err := report.AppendBenchmark("benchmark.log", input); err != nil {
			logger.Warn("could not write benchmark.log", "error", err)
		}
	}

	target := cfg.Export.Output
	if cfg.Export.FramesDir != "" {
		target = cfg.Export.FramesDir
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d frames to %s\n", report.Frames, target)
	return nil
}

// applyExportFlags layers command line flags over the show file.
func applyExportFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	e := &cfg.Export

	if v, _ := f.GetString("output"); v != "" {
		e.Output = v
	}
	if v, _ := f.GetString("frames"); v != "" {
		e.FramesDir = v
	}
	if v, _ := f.GetString("audio"); v != "" {
		e.AudioPath = v
	}
	if v, _ := f.GetInt("workers"); v > 0 {
		e.Workers = v
	}
	if v, _ := f.GetString("encoder"); v != "" {
		e.VideoEncoder = v
	}
	if v, _ := f.GetInt("quality"); v > 0 {
		e.Quality = v
	}
	if v, _ := f.GetBool("stats"); v {
		e.ShowStats = true
	}
	e.BuildVersion = version

	if e.AudioPath == "latest" {
		latest, err := system.FindLatest(filepath.Join("input", "audio"), system.AudioExtensions)
		if err != nil {
			return err
		}
		e.AudioPath = latest
	}
	if e.FramesDir == "" && e.Output == "" {
		e.Output = defaultOutput(cfg.Title)
	}
	if e.VideoEncoder == "auto" {
		e.VideoEncoder = system.BestH264Encoder()
	}
	return nil
}

func defaultOutput(title string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if name == "" {
		name = "showreel"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s.mp4", name, timestamp))
}

func openSink(ctx context.Context, cfg *config.Config, pool *system.FramePool, logger *logging.Logger) (video.Sink, error) {
	e := cfg.Export
	if e.FramesDir != "" {
		system.RaiseFileLimit(uint64(e.Workers)*4+64, logger.Logger)
		return video.NewPNGSink(ctx, e.FramesDir, e.Workers, pool, logger.Logger)
	}

	if e.AudioPath != "" {
		if d, err := system.AudioDuration(e.AudioPath); err != nil {
			logger.Warn("could not probe audio duration", "file", e.AudioPath, "error", err)
		} else if d < float64(cfg.Duration) {
			logger.Warn("audio is shorter than the show; the video will be cut", "audio", d, "show", float64(cfg.Duration))
		}
	}
	if dir := filepath.Dir(e.Output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return video.NewFFmpegSink(ctx, video.EncoderSettings{
		Width:     cfg.Width,
		Height:    cfg.Height,
		FPS:       cfg.FPS,
		Encoder:   e.VideoEncoder,
		Quality:   e.Quality,
		AudioPath: e.AudioPath,
		Output:    e.Output,
	}, logger.Logger)
}
