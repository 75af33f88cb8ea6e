package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/showreel/internal/analyzer"
	"github.com/ivlev/showreel/internal/camera"
	"github.com/ivlev/showreel/internal/config"
	"github.com/ivlev/showreel/internal/parts"
	"github.com/ivlev/showreel/internal/segment"
	"github.com/ivlev/showreel/internal/source"
)

var cameraCmd = &cobra.Command{
	Use:   "camera",
	Short: "Work with slide camera paths",
}

var cameraPlanCmd = &cobra.Command{
	Use:   "plan <segment>",
	Short: "Detect content blocks on a page and plan a camera path",
	Long: `Load a slides segment, detect content blocks on one page and write the
planned keyframes as YAML. The file can be edited by hand and referenced from
the segment's camera option.

Example:
  showreel camera plan intro --page 2 --out camera/intro.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCameraPlan,
}

func init() {
	cameraPlanCmd.Flags().Int("page", 0, "page to analyze (zero-based, among loaded pages)")
	cameraPlanCmd.Flags().String("out", "", "write the path here instead of stdout")
	cameraPlanCmd.Flags().String("detector", "contrast", "block detector")
	cameraPlanCmd.Flags().Float64("duration", 0, "seconds on the page (default: segment length / pages)")
	cameraCmd.AddCommand(cameraPlanCmd)
}

func runCameraPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	var sc *config.SegmentConfig
	for i := range cfg.Segments {
		if cfg.Segments[i].Name == args[0] {
			sc = &cfg.Segments[i]
			break
		}
	}
	seg, err := buildSegment(cfg, args[0])
	if err != nil {
		return err
	}
	slides, ok := seg.(*parts.Slides)
	if !ok {
		return fmt.Errorf("segment %s is a %s segment, not %s", args[0], sc.Kind, parts.KindSlides)
	}

	env := segment.Env{
		Width:  cfg.Width,
		Height: cfg.Height,
		Assets: source.NewLoader(assetsRoot),
		Logger: logger.Logger,
	}
	if err := slides.Init(cmd.Context(), env); err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	img := slides.PageImage(page)
	if img == nil {
		return fmt.Errorf("page %d out of range (%d pages loaded)", page, slides.Pages())
	}

	variant, _ := cmd.Flags().GetString("detector")
	det, err := analyzer.NewDetector(variant)
	if err != nil {
		return err
	}
	blocks, err := det.Detect(cmd.Context(), img)
	if err != nil {
		return err
	}
	logger.Info("blocks detected", "segment", args[0], "page", page, "count", len(blocks))

	duration, _ := cmd.Flags().GetFloat64("duration")
	if duration <= 0 && slides.Pages() > 0 {
		duration = float64(sc.End-sc.Start) / float64(slides.Pages())
	}
	path := camera.NewPlanner().Plan(blocks, img.Rect.Dx(), img.Rect.Dy(), duration)

	out, _ := cmd.Flags().GetString("out")
	if out != "" {
		if err := camera.WritePath(path, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d keyframes to %s\n", len(path), out)
		return nil
	}
	data, err := yaml.Marshal(path)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
