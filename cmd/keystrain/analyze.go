package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keystrain/internal/analyzer"
	"github.com/verte-zerg/keystrain/internal/config"
	"github.com/verte-zerg/keystrain/internal/layout"
	"github.com/verte-zerg/keystrain/internal/logging"
	"github.com/verte-zerg/keystrain/internal/manifest"
	"github.com/verte-zerg/keystrain/internal/model"
	"github.com/verte-zerg/keystrain/internal/penalty"
	"github.com/verte-zerg/keystrain/internal/report"
	"github.com/verte-zerg/keystrain/internal/reportui"
)

const (
	defaultFormat    = model.FormatText
	defaultChunkSize = "1MiB"
	defaultThreshold = "10MiB"
	defaultEncoding  = analyzer.DefaultEncoding
	defaultUnknown   = "skip"
)

var (
	analyzeLayouts    []string
	analyzeManifest   string
	analyzeFormat     string
	analyzeSVGDir     string
	analyzeTUI        bool
	analyzeChunkSize  string
	analyzeThreshold  string
	analyzeEncoding   string
	analyzeCarryState bool
	analyzeUnknown    string
	analyzeBars       bool
	analyzeColor      bool
)

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&analyzeLayouts, "layout", "l", layout.DefaultIDs, "layout ids to analyse, or 'all'")
	cmd.Flags().StringVar(&analyzeManifest, "manifest", "", "file listing one input path per line")
	cmd.Flags().StringVar(&analyzeFormat, "format", defaultFormat, "output format: text or json")
	cmd.Flags().StringVar(&analyzeSVGDir, "svg", "", "write one SVG chart per file into this directory")
	cmd.Flags().BoolVar(&analyzeTUI, "tui", false, "browse results interactively")
	cmd.Flags().StringVar(&analyzeChunkSize, "chunk-size", defaultChunkSize, "chunk size for large files")
	cmd.Flags().StringVar(&analyzeThreshold, "threshold", defaultThreshold, "files above this size are read in chunks")
	cmd.Flags().StringVar(&analyzeEncoding, "encoding", defaultEncoding, "input encoding (WHATWG label, e.g. windows-1251)")
	cmd.Flags().BoolVar(&analyzeCarryState, "carry-state", false, "keep finger state across chunk boundaries")
	cmd.Flags().StringVar(&analyzeUnknown, "unknown", defaultUnknown, "unknown characters: skip or legacy")
	cmd.Flags().BoolVar(&analyzeBars, "bars", true, "draw per-finger bar charts")
	cmd.Flags().BoolVar(&analyzeColor, "color", true, "colour bar charts on terminals")
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a := fileCfg.Analyze
	applyStringSliceConfig(cmd, "layout", &analyzeLayouts, a.Layouts)
	applyStringConfig(cmd, "format", &analyzeFormat, a.Format)
	applyStringConfig(cmd, "chunk-size", &analyzeChunkSize, a.ChunkSize)
	applyStringConfig(cmd, "threshold", &analyzeThreshold, a.Threshold)
	applyStringConfig(cmd, "encoding", &analyzeEncoding, a.Encoding)
	applyBoolConfig(cmd, "carry-state", &analyzeCarryState, a.CarryState)
	applyStringConfig(cmd, "unknown", &analyzeUnknown, a.Unknown)
	applyBoolConfig(cmd, "bars", &analyzeBars, a.Bars)
	applyBoolConfig(cmd, "color", &analyzeColor, a.Color)

	cfg, err := buildAnalyzeConfig(args)
	if err != nil {
		return err
	}
	if err := validateAnalyzeConfig(cfg); err != nil {
		return err
	}

	files := cfg.Files
	if cfg.Manifest != "" {
		listed, err := manifest.Load(cfg.Manifest)
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
		files = manifest.Merge(files, listed)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files to analyse: pass FILE arguments or --manifest")
	}

	tables, err := layout.LoadAll(config.DefaultLayoutDir())
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}
	selected, err := layout.Select(tables, cfg.Layouts)
	if err != nil {
		return err
	}

	policy, err := penalty.ParseUnknownPolicy(cfg.Unknown)
	if err != nil {
		return err
	}
	logger := logging.FromContext(cmd.Context())
	driver, err := analyzer.New(logger, analyzer.Options{
		Threshold:  cfg.Threshold,
		ChunkSize:  int(cfg.ChunkSize),
		Encoding:   cfg.Encoding,
		CarryState: cfg.CarryState,
		Engine:     []penalty.Option{penalty.WithUnknownPolicy(policy)},
	})
	if err != nil {
		return err
	}

	rep := analyzeAll(driver, files, selected)

	if cfg.SVGDir != "" {
		if err := writeCharts(cfg.SVGDir, rep, logger); err != nil {
			return err
		}
	}
	if cfg.TUI {
		if err := reportui.Run(rep); err != nil {
			return fmt.Errorf("failed to run report TUI: %w", err)
		}
		return nil
	}
	return writeReport(cmd.OutOrStdout(), rep, cfg)
}

func buildAnalyzeConfig(args []string) (model.AnalyzeConfig, error) {
	chunkSize, err := config.ParseSize(analyzeChunkSize)
	if err != nil {
		return model.AnalyzeConfig{}, fmt.Errorf("--chunk-size: %w", err)
	}
	threshold, err := config.ParseSize(analyzeThreshold)
	if err != nil {
		return model.AnalyzeConfig{}, fmt.Errorf("--threshold: %w", err)
	}
	return model.AnalyzeConfig{
		Files:      args,
		Manifest:   analyzeManifest,
		Layouts:    analyzeLayouts,
		Format:     strings.ToLower(strings.TrimSpace(analyzeFormat)),
		SVGDir:     analyzeSVGDir,
		TUI:        analyzeTUI,
		ChunkSize:  chunkSize,
		Threshold:  threshold,
		Encoding:   analyzeEncoding,
		CarryState: analyzeCarryState,
		Unknown:    analyzeUnknown,
		Bars:       analyzeBars,
		Color:      analyzeColor,
	}, nil
}

func validateAnalyzeConfig(cfg model.AnalyzeConfig) error {
	if cfg.Format != model.FormatText && cfg.Format != model.FormatJSON {
		return fmt.Errorf("--format must be %q or %q", model.FormatText, model.FormatJSON)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("--chunk-size must be > 0")
	}
	if cfg.ChunkSize > 1<<30 {
		return fmt.Errorf("--chunk-size must be at most 1GiB")
	}
	if len(cfg.Layouts) == 0 {
		return fmt.Errorf("--layout must not be empty")
	}
	if cfg.TUI && cfg.Format == model.FormatJSON {
		return fmt.Errorf("--tui cannot be combined with --format json")
	}
	return nil
}

func analyzeAll(driver *analyzer.Driver, files []string, tables []*layout.Table) report.Report {
	var rep report.Report
	for _, path := range files {
		for _, t := range tables {
			res, err := driver.AnalyzeFile(path, t)
			rep.Add(report.Entry{
				Resource: path,
				Layout:   t.ID,
				Name:     t.Name,
				Result:   res,
				Err:      err,
			})
		}
	}
	return rep
}

func writeReport(w io.Writer, rep report.Report, cfg model.AnalyzeConfig) error {
	if cfg.Format == model.FormatJSON {
		if err := report.WriteJSON(w, rep); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	opts := report.DefaultOptions(w)
	opts.Bars = cfg.Bars
	opts.Color = opts.Color && cfg.Color
	if err := report.WriteText(w, rep, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeCharts(dir string, rep report.Report, logger *log.Logger) error {
	resources := rep.Resources()
	names := chartNames(resources)
	for i, resource := range resources {
		data := report.RenderSVG(resource, rep.ForResource(resource))
		path := filepath.Join(dir, names[i])
		err := writeFileAtomic(path, func(f *os.File) error {
			_, err := f.Write(data)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		logger.Info("wrote chart", "file", resource, "path", path)
	}
	return nil
}

// chartNames assigns a distinct SVG file name to each resource.
func chartNames(resources []string) []string {
	used := make(map[string]int, len(resources))
	out := make([]string, len(resources))
	for i, resource := range resources {
		name := report.SVGFileName(resource)
		used[name]++
		if n := used[name]; n > 1 {
			name = strings.TrimSuffix(name, ".svg") + "-" + strconv.Itoa(n) + ".svg"
		}
		out[i] = name
	}
	return out
}
