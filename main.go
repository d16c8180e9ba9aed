// main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg        *Config
	stylesheet string
	logCloser  io.Closer
)

func main() { // NOSONAR
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "circlegauge",
	Short:         "Render the Circle Gauge visual from host update payloads",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = loadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}

		logger, closer, err := newLogger(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		logCloser = closer
		SetLogger(logger)
		gg.SetLogger(logger)

		SetRenderOptions(cfg.Render.options())
		stylesheet, err = loadStylesheet(cfg.Render.Stylesheet)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/circlegauge.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	renderCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().String("renderer", "", "image backend for png/jpg: chrome or native")
	renderCmd.Flags().Float64("width", 0, "viewport width override")
	renderCmd.Flags().Float64("height", 0, "viewport height override")

	batchCmd.Flags().StringP("out-dir", "d", "", "directory for rendered files (default: input directory)")
	batchCmd.Flags().StringP("format", "f", "", "output format (default: output.format)")
	batchCmd.Flags().String("renderer", "", "image backend for png/jpg: chrome or native")

	rootCmd.AddCommand(renderCmd, batchCmd, manifestCmd, versionCmd)
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render <update.json|update.yaml> [format]",
	Short: "Render one update file (svg, html, png, jpg/jpeg)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := cfg.Output.Format
		if len(args) == 2 {
			format = strings.ToLower(args[1])
		}
		if !supportedFormats[format] {
			return fmt.Errorf("format %q (supported: html, svg, png, jpg/jpeg): %w", format, errUnsupportedFormat)
		}
		if err := applyRendererFlag(cmd); err != nil {
			return err
		}

		req := exportRequest{InputFile: args[0], Format: format, Viewport: cfg.Viewport}
		w, _ := cmd.Flags().GetFloat64("width")
		h, _ := cmd.Flags().GetFloat64("height")
		if w > 0 || h > 0 {
			if w > 0 {
				req.Viewport.Width = w
			}
			if h > 0 {
				req.Viewport.Height = h
			}
			req.Override = true
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			Logger().Info("output directed to stdout")
			return renderUpdateFile(cmd.Context(), cfg, stylesheet, req, cmd.OutOrStdout())
		}
		return renderToFile(cmd.Context(), req, outputFile)
	},
}

// renderToFile renders into path and removes the partial file on failure.
func renderToFile(ctx context.Context, req exportRequest, path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file '%s': %w", path, err)
	}
	genErr := renderUpdateFile(ctx, cfg, stylesheet, req, outFile)
	closeErr := outFile.Close()
	if genErr != nil {
		if removeErr := os.Remove(path); removeErr != nil {
			Logger().Warn("could not remove output file after error", "path", path, "err", removeErr)
		}
		return fmt.Errorf("error generating %s: %w", req.Format, genErr)
	}
	if closeErr != nil {
		return fmt.Errorf("error closing output file '%s': %w", path, closeErr)
	}
	Logger().Info("output saved", "path", path, "format", strings.ToUpper(req.Format))
	return nil
}

func applyRendererFlag(cmd *cobra.Command) error {
	r, _ := cmd.Flags().GetString("renderer")
	if r == "" {
		return nil
	}
	r = strings.ToLower(r)
	if r != rendererChrome && r != rendererNative {
		return fmt.Errorf("--renderer must be %q or %q, got %q", rendererChrome, rendererNative, r)
	}
	cfg.Output.Renderer = r
	return nil
}

// --- Batch Command ---

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Render every update file in a directory concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyRendererFlag(cmd); err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Output.Format
		}
		format = strings.ToLower(format)
		if !supportedFormats[format] {
			return fmt.Errorf("format %q: %w", format, errUnsupportedFormat)
		}
		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir == "" {
			outDir = args[0]
		}
		return renderBatch(cmd.Context(), args[0], outDir, format)
	},
}

// renderBatch renders each update file with its own gauge instance, at most
// output.concurrency at a time.
func renderBatch(ctx context.Context, inDir, outDir, format string) error {
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Output.Concurrency)
	count := 0
	for _, e := range entries {
		if e.IsDir() || !isUpdateFile(e.Name()) {
			continue
		}
		count++
		input := filepath.Join(inDir, e.Name())
		req := exportRequest{InputFile: input, Format: format, Viewport: cfg.Viewport}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return renderToFile(gctx, req, outputName(outDir, input, format))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	Logger().Info("batch complete", "files", count, "format", format, "out", outDir)
	return nil
}

// --- Manifest Command ---

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the registered visual plugins as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(Plugins())
	},
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "circlegauge %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  plugin:  %s (api %s)\n", pluginName, pluginAPIVersion)
	},
}
