// Package main provides the CLI entrypoint for keystrain.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/keystrain/internal/config"
	"github.com/verte-zerg/keystrain/internal/logging"
)

var verbose bool

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keystrain [FILE...]",
		Short:         "Estimate finger load of typing text on keyboard layouts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.New(cmd.ErrOrStderr(), logging.Level(verbose))
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		RunE: runAnalyzeCmd,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	addAnalyzeFlags(rootCmd)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newGenCmd())

	return rootCmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# keystrain configuration
# Uncomment a value to enable it. CLI flags override config values.
# User layouts are read from %s

[analyze]
# layouts = ["qwerty", "diktor"]  # Layout ids, or ["all"]
# format = %q                   # Output format: text or json
# chunk-size = %q               # Chunk size for large files
# threshold = %q               # Files above this size are read in chunks
# encoding = %q                # WHATWG label of the input encoding
# carry-state = false             # Keep finger state across chunks
# unknown = %q                   # Unknown characters: skip or legacy
# bars = true                     # Draw per-finger bar charts
# color = true                    # Colour bars on terminals

[gen]
# layout = %q                 # Layout whose letters are used
# min-len = %d                    # Shortest word
# max-len = %d                    # Longest word
# caps = %.2f                   # Probability of capitalized first letter (0-1)
# punct = %.2f                  # Punctuation probability per word (0-1)
# punct-set = %q            # Punctuation set
# line-words = %d                # Words per line (0 = one line)
`,
		config.DefaultLayoutDir(),
		defaultFormat,
		defaultChunkSize,
		defaultThreshold,
		defaultEncoding,
		defaultUnknown,
		defaultGenLayout,
		defaultMinLen,
		defaultMaxLen,
		defaultGenCaps,
		defaultGenPunct,
		defaultGenPunctSet,
		defaultLineWords,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if len(value) == 0 {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), value...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, write func(f *os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".keystrain-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
