package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/showreel/internal/inspect"
	"github.com/ivlev/showreel/internal/params"
	"github.com/ivlev/showreel/internal/segment"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect and edit segment parameters",
	Long: `Inspect and edit the tunable parameters of a segment. Values are read
from and written to <parameters_dir>/<segment>.json.

Example:
  showreel params list
  showreel params show Part02
  showreel params set Part02 eye=10,-80,40 enableGrid=false scaleModel=0.05`,
}

var paramsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List segments and their parameter files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store := newStore(cfg, newLogger(cmd, cfg))
		for _, sc := range cfg.Segments {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-8s %6.2f-%-6.2f %s\n",
				sc.Name, sc.Kind, float64(sc.Start), float64(sc.End), store.Path(sc.Name))
		}
		return nil
	},
}

var paramsShowCmd = &cobra.Command{
	Use:   "show <segment>",
	Short: "Print a segment's parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seg, store, err := openParams(cmd, args[0])
		if err != nil {
			return err
		}
		if err := loadSaved(store, seg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inspect.Describe(seg.Name(), seg.Params()))
		return nil
	},
}

var paramsSetCmd = &cobra.Command{
	Use:   "set <segment> name=value...",
	Short: "Change parameters and save them",
	Long: `Apply name=value assignments to a segment's saved parameters and write
the file back. Vectors and colors take three comma separated numbers, flags
take true or false. Floats are clamped to their range.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seg, store, err := openParams(cmd, args[0])
		if err != nil {
			return err
		}
		script, err := inspect.ParseScript(args[1:])
		if err != nil {
			return err
		}
		if err := loadSaved(store, seg); err != nil {
			return err
		}

		seg.Params().Edit(script)
		if err := script.Err(); err != nil {
			return err
		}
		if err := store.Save(seg.Name(), seg.Params()); err != nil {
			return err
		}

		p := inspect.NewPanel()
		seg.Params().Edit(p)
		fmt.Fprintln(cmd.OutOrStdout(), p.Render(seg.Name(), "set "+strings.Join(script.Applied(), ", ")))
		return nil
	},
}

var paramsSaveCmd = &cobra.Command{
	Use:   "save <segment>",
	Short: "Write a segment's current parameters to its file",
	Long: `Rewrite the parameter file with every binding in registration order.
Values already in the file are kept; bindings missing from it are written with
their defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seg, store, err := openParams(cmd, args[0])
		if err != nil {
			return err
		}
		if err := loadSaved(store, seg); err != nil {
			return err
		}
		if err := store.Save(seg.Name(), seg.Params()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", store.Path(seg.Name()))
		return nil
	},
}

var paramsLoadCmd = &cobra.Command{
	Use:   "load <segment>",
	Short: "Check that a segment's parameter file loads",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seg, store, err := openParams(cmd, args[0])
		if err != nil {
			return err
		}
		if err := store.Load(seg.Name(), seg.Params()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inspect.Describe(seg.Name(), seg.Params()))
		return nil
	},
}

func init() {
	paramsCmd.AddCommand(paramsListCmd, paramsShowCmd, paramsSetCmd, paramsSaveCmd, paramsLoadCmd)
}

func openParams(cmd *cobra.Command, name string) (segment.Segment, *params.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	seg, err := buildSegment(cfg, name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (segments: %s)", err, strings.Join(segmentNames(cfg), ", "))
	}
	if err := seg.Params().Validate(); err != nil {
		return nil, nil, err
	}
	return seg, newStore(cfg, newLogger(cmd, cfg)), nil
}

// loadSaved applies the saved file if there is one.
func loadSaved(store *params.Store, seg segment.Segment) error {
	err := store.Load(seg.Name(), seg.Params())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
