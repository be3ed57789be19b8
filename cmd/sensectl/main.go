package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johncui/senses/pkg/model"
	"github.com/johncui/senses/pkg/preset"
	"github.com/johncui/senses/pkg/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globals struct {
	name          string
	presetsPath   string
	qualityWindow int
	verbose       bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "sensectl",
		Short:         "Classify environment descriptions through five senses",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.name, "name", session.DefaultName, "session name")
	root.PersistentFlags().StringVar(&g.presetsPath, "presets", "", "YAML preset file (defaults to built-in presets)")
	root.PersistentFlags().IntVar(&g.qualityWindow, "quality-window", 0, "readings per sense in the quality vote (0 = all)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log session events to stderr")

	root.AddCommand(newExperienceCmd(g))
	root.AddCommand(newDemoCmd(g))
	root.AddCommand(newPresetsCmd(g))
	return root
}

func (g *globals) newSession() *session.Session {
	var logger *slog.Logger
	if g.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return session.New(g.name, session.Options{QualityWindow: g.qualityWindow, Logger: logger})
}

func (g *globals) loadPresets() ([]preset.Preset, error) {
	if g.presetsPath == "" {
		return preset.Builtin(), nil
	}
	return preset.LoadFile(g.presetsPath)
}

func newExperienceCmd(g *globals) *cobra.Command {
	descs := make(map[model.Sense]*string, len(model.Senses))
	var extra []string
	var consciousness float64
	var focus string

	cmd := &cobra.Command{
		Use:   "experience",
		Short: "Classify one environment and print the integrated experience",
		Example: `  sensectl experience --vision "a red car" --hearing "loud thunder"
  sensectl experience --sense smell="fresh coffee" --focus olfactory`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := model.Environment{}
			for _, s := range model.Senses {
				if v := *descs[s]; v != "" {
					env[string(s)] = v
				}
			}
			for _, kv := range extra {
				name, desc, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--sense expects name=description, got %q", kv)
				}
				env[name] = desc
			}
			if len(env) == 0 {
				return fmt.Errorf("describe at least one sense")
			}

			s := g.newSession()
			if cmd.Flags().Changed("consciousness") {
				s.SetConsciousnessLevel(consciousness)
			}
			if focus != "" {
				s.SetAttentionFocus(focus)
			}
			res, _ := s.Experience(env)
			printExperience(cmd.OutOrStdout(), s.Name(), res)
			return nil
		},
	}
	for _, s := range model.Senses {
		descs[s] = new(string)
		cmd.Flags().StringVar(descs[s], string(s), "", "what the "+string(s)+" sense perceives")
	}
	cmd.Flags().StringArrayVar(&extra, "sense", nil, "additional name=description pair (repeatable)")
	cmd.Flags().Float64Var(&consciousness, "consciousness", 1, "consciousness level, clamped to [0,1]")
	cmd.Flags().StringVar(&focus, "focus", "", "attention focus label")
	return cmd
}

func newDemoCmd(g *globals) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run preset environments through one session and print statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := g.loadPresets()
			if err != nil {
				return err
			}
			if len(only) > 0 {
				var picked []preset.Preset
				for _, key := range only {
					p, ok := preset.Find(presets, key)
					if !ok {
						return fmt.Errorf("preset %q not found", key)
					}
					picked = append(picked, p)
				}
				presets = picked
			}

			out := cmd.OutOrStdout()
			s := g.newSession()
			s.WakeUp()
			for _, p := range presets {
				fmt.Fprintln(out, titleStyle.Render("Experience: "+p.Name))
				res, _ := s.Experience(p.Environment)
				printExperience(out, s.Name(), res)
			}
			printStats(out, s.Stats())
			s.Sleep()
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "preset names or 1-based indexes to run")
	return cmd
}

func newPresetsCmd(g *globals) *cobra.Command {
	var export bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List preset environments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := g.loadPresets()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if export {
				data, err := preset.Marshal(presets)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			for i, p := range presets {
				fmt.Fprintf(out, "%d. %s\n", i+1, p.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&export, "yaml", false, "print presets as YAML")
	return cmd
}
