package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keystrain/internal/config"
	"github.com/verte-zerg/keystrain/internal/layout"
	"github.com/verte-zerg/keystrain/internal/logging"
	"github.com/verte-zerg/keystrain/internal/model"
	"github.com/verte-zerg/keystrain/internal/textgen"
)

const (
	defaultGenLayout   = "qwerty"
	defaultGenSize     = "64KiB"
	defaultMinLen      = 2
	defaultMaxLen      = 9
	defaultGenCaps     = 0.1
	defaultGenPunct    = 0.15
	defaultGenPunctSet = ".,!?:;"
	defaultLineWords   = 12
)

var (
	genLayout    string
	genSize      string
	genSeed      int64
	genMinLen    int
	genMaxLen    int
	genCaps      float64
	genPunct     float64
	genPunctSet  string
	genLineWords int
	genOutput    string
)

func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate random text over a layout's letters",
		Args:  cobra.NoArgs,
		RunE:  runGenCmd,
	}
	cmd.Flags().StringVar(&genLayout, "layout", defaultGenLayout, "layout whose letters are used")
	cmd.Flags().StringVar(&genSize, "size", defaultGenSize, "minimum output size")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&genMinLen, "min-len", defaultMinLen, "shortest word")
	cmd.Flags().IntVar(&genMaxLen, "max-len", defaultMaxLen, "longest word")
	cmd.Flags().Float64Var(&genCaps, "caps", defaultGenCaps, "probability of capitalized first letter (0-1)")
	cmd.Flags().Float64Var(&genPunct, "punct", defaultGenPunct, "punctuation probability per word (0-1)")
	cmd.Flags().StringVar(&genPunctSet, "punct-set", defaultGenPunctSet, "punctuation set")
	cmd.Flags().IntVar(&genLineWords, "line-words", defaultLineWords, "words per line (0 = one line)")
	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "output file (default stdout)")
	return cmd
}

func runGenCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	g := fileCfg.Gen
	applyStringConfig(cmd, "layout", &genLayout, g.Layout)
	applyIntConfig(cmd, "min-len", &genMinLen, g.MinLen)
	applyIntConfig(cmd, "max-len", &genMaxLen, g.MaxLen)
	applyFloatConfig(cmd, "caps", &genCaps, g.CapsPct)
	applyFloatConfig(cmd, "punct", &genPunct, g.PunctPct)
	applyStringConfig(cmd, "punct-set", &genPunctSet, g.PunctSet)
	applyIntConfig(cmd, "line-words", &genLineWords, g.LineWords)

	size, err := config.ParseSize(genSize)
	if err != nil {
		return fmt.Errorf("--size: %w", err)
	}
	cfg := model.GenConfig{
		Layout:    genLayout,
		Size:      size,
		Seed:      genSeed,
		MinLen:    genMinLen,
		MaxLen:    genMaxLen,
		CapsPct:   genCaps,
		PunctPct:  genPunct,
		PunctSet:  genPunctSet,
		LineWords: genLineWords,
		Output:    genOutput,
	}
	opts := genOptions(cfg)
	if err := opts.Validate(); err != nil {
		return err
	}

	tables, err := layout.LoadAll(config.DefaultLayoutDir())
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}
	t, err := layout.Find(tables, cfg.Layout)
	if err != nil {
		return err
	}
	letters := textgen.Letters(t)

	gen := textgen.New()
	if cfg.Seed != 0 {
		gen = textgen.NewSeeded(cfg.Seed)
	}
	write := func(w io.Writer) (int64, error) {
		bw := bufio.NewWriter(w)
		n, err := gen.WriteSize(bw, letters, cfg.Size, opts)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		return n + 1, bw.Flush()
	}

	var written int64
	if cfg.Output == "" {
		written, err = write(cmd.OutOrStdout())
	} else {
		err = writeFileAtomic(cfg.Output, func(f *os.File) error {
			var werr error
			written, werr = write(f)
			return werr
		})
	}
	if err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug("generated text", "layout", t.ID, "size", humanize.IBytes(uint64(written)))
	return nil
}

func genOptions(cfg model.GenConfig) textgen.Options {
	return textgen.Options{
		MinLen:    cfg.MinLen,
		MaxLen:    cfg.MaxLen,
		CapsPct:   cfg.CapsPct,
		PunctPct:  cfg.PunctPct,
		PunctSet:  []rune(cfg.PunctSet),
		LineWords: cfg.LineWords,
	}
}
