package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/gestures"
)

// replayOpts holds flags for the replay command.
type replayOpts struct {
	script     string
	configPath string
	jsonOutput bool
}

// replayResult is what a replay observed.
type replayResult struct {
	Frames    int                `json:"frames"`
	Emissions []emissionRow      `json:"emissions"`
	Final     gestures.Transform `json:"final"`
}

func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a touch script and print every fired callback",
		Long: `Replay feeds a recorded touch script (.json, .yaml or .yml) through a
headless gesture and prints each callback with the transform it carried.`,
		Example: `  gestures replay pinch.yaml
  gestures replay drag.json --config gestures.toml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.script = args[0]
			return runReplay(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "gesture config file (.toml, .yaml or .json)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "write emissions as JSON lines")
	return cmd
}

func runReplay(ctx context.Context, w io.Writer, opts replayOpts) error {
	res, err := replay(ctx, opts)
	if err != nil {
		return err
	}
	if opts.jsonOutput {
		enc := json.NewEncoder(w)
		for _, row := range res.Emissions {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return enc.Encode(map[string]any{"final": res.Final, "frames": res.Frames})
	}
	printTable(w, filepath.Base(opts.script), res.Emissions, res.Final)
	return nil
}

// replay runs the script headless and records every emission.
func replay(ctx context.Context, opts replayOpts) (replayResult, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(ctx, opts.configPath)
	if err != nil {
		return replayResult{}, err
	}
	runner, err := gestures.LoadScriptFile(opts.script)
	if err != nil {
		return replayResult{}, err
	}
	runner.OnStep = func(action, label string) {
		logger.Debug("step", "action", action, "label", label)
	}

	g := newGesture(ctx, filepath.Base(opts.script), cfg)
	var res replayResult
	for _, k := range gestures.CallbackKinds() {
		g.On(k, func(gc gestures.GestureContext) {
			res.Emissions = append(res.Emissions, emissionRow{
				Index:     len(res.Emissions) + 1,
				Kind:      gc.Kind,
				Transform: gc.Transform,
			})
		})
	}

	res.Frames = gestures.Replay(g, &gestures.TouchInput{}, runner)
	res.Final = g.Transform()
	if err := ctx.Err(); err != nil {
		return replayResult{}, fmt.Errorf("replay: %w", err)
	}
	logger.Info("replay complete", "frames", res.Frames, "callbacks", len(res.Emissions))
	return res, nil
}
