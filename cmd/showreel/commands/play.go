package commands

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/engine"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the show headless in real time",
	Long: `Play the show against the wall clock without a window. Segment
activation and deactivation are logged as they happen, and the resolved
segment, local time and cover alpha are logged periodically.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		start, err := config.ParseSeconds(from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		every, _ := cmd.Flags().GetDuration("log-every")
		fps, _ := cmd.Flags().GetInt("fps")
		if fps <= 0 {
			fps = cfg.FPS
		}

		logger := newLogger(cmd, cfg)
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		s := newShow(cfg, logger)
		if err := s.Init(ctx); err != nil {
			return fmt.Errorf("show startup failed: %w", err)
		}

		p := &engine.Player{
			Show:     s,
			Width:    cfg.Width,
			Height:   cfg.Height,
			FPS:      fps,
			Duration: float64(cfg.Duration),
			Start:    start,
			LogEvery: every,
			Logger:   logger.Logger,
		}
		frames, err := p.Run(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Played %d frames\n", frames)
		return err
	},
}

func init() {
	playCmd.Flags().String("from", "0", "start time (seconds or MM:SS.mmm)")
	playCmd.Flags().Duration("log-every", time.Second, "status log interval (0 disables)")
	playCmd.Flags().Int("fps", 0, "render rate (default from the show file)")
}
