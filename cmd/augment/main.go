// SPDX-License-Identifier: MIT

// Command augment runs the train or eval pipeline over one rgb/label PNG
// pair and writes the materialized samples as PNG previews.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/lvaugment/config"
	"github.com/katalvlaran/lvaugment/logging"
	"github.com/katalvlaran/lvaugment/ops"
	"github.com/katalvlaran/lvaugment/pipeline"
	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/telemetry"
	"github.com/katalvlaran/lvaugment/tensor"
)

const version = "0.1.0"

// CLI defines the command-line interface for augment.
var CLI struct {
	LogLevel string `name:"log-level" help:"debug|info|warn|error" default:"info" env:"LVAUGMENT_LOG_LEVEL"`
	LogJSON  bool   `name:"log-json" help:"Emit JSON log lines" env:"LVAUGMENT_LOG_JSON"`

	Run     RunCmd     `cmd:"" help:"Materialize augmented samples from a PNG pair"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RunCmd materializes Repeat samples of one pair.
type RunCmd struct {
	Config      string `help:"Pipeline YAML; a missing file means defaults" type:"path"`
	RGB         string `name:"rgb" help:"Color PNG" required:"" type:"existingfile"`
	Label       string `help:"Label PNG, class id = gray level" required:"" type:"existingfile"`
	Variant     string `help:"train|eval, overrides the config file"`
	Key         string `help:"Sample key; a random UUID when empty"`
	Repeat      int    `help:"Number of link indices to materialize" default:"1"`
	Out         string `help:"Output directory" default:"." type:"path"`
	MetricsAddr string `name:"metrics-addr" help:"Serve prometheus metrics on this address while running"`
	DumpConfig  bool   `name:"dump-config" help:"Print the resolved config as YAML and exit"`
}

// Run is invoked by kong.
func (c *RunCmd) Run(ctx *kong.Context) error {
	return c.run(ctx.Stdout)
}

func (c *RunCmd) run(stdout io.Writer) error {
	log := logging.L()
	if c.Repeat < 1 {
		return fmt.Errorf("run: --repeat %d must be positive", c.Repeat)
	}

	f, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Variant != "" {
		f.Variant = c.Variant
	}

	rgb, err := readColor(c.RGB)
	if err != nil {
		return fmt.Errorf("run: rgb: %w", err)
	}
	label, err := readLabel(c.Label)
	if err != nil {
		return fmt.Errorf("run: label: %w", err)
	}
	if len(f.Pipeline.Target) == 0 {
		f.Pipeline.Target = append([]int(nil), rgb.Shape...)
	}

	if c.DumpConfig {
		b, err := config.Marshal(f)
		if err != nil {
			return err
		}
		_, err = stdout.Write(b)
		return err
	}

	variant, err := f.VariantValue()
	if err != nil {
		return err
	}
	cfg, err := f.PipelineConfig()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := telemetry.NewMetrics(reg)
	if err != nil {
		return err
	}
	if c.MetricsAddr != "" {
		srv := &http.Server{Addr: c.MetricsAddr, Handler: telemetry.Handler(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", "addr", c.MetricsAddr, "err", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	key := c.Key
	if key == "" {
		key = uuid.New().String()
	}
	provider := pipeline.NewMapProvider()
	for link := 0; link < c.Repeat; link++ {
		provider.Put(pipeline.ModalityRGB, key, link, rgb)
		provider.Put(pipeline.ModalityLabel, key, link, label)
	}

	ds, err := pipeline.New(variant, cfg, provider, pipeline.WithMetrics(metrics), pipeline.WithLogger(log))
	if err != nil {
		return err
	}
	inverse := previewInverse(ds.Chains()[pipeline.ModalityRGB])

	if err = os.MkdirAll(c.Out, 0o755); err != nil {
		return err
	}
	for link := 0; link < c.Repeat; link++ {
		rgbOut, err := ds.RGB(key, link, pipeline.ModalityConfig{Name: pipeline.ModalityRGB})
		if err != nil {
			return err
		}
		labelOut, err := ds.Label(key, link, pipeline.ModalityConfig{Name: pipeline.ModalityLabel})
		if err != nil {
			return err
		}
		preview, err := inverse(rgbOut)
		if err != nil {
			return err
		}

		base := filepath.Join(c.Out, fmt.Sprintf("%s_%s_%d", key, variant, link))
		if err = writeColor(base+"_rgb.png", preview); err != nil {
			return err
		}
		if err = writeLabel(base+"_label.png", labelOut); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s_rgb.png %s\n%s_label.png %s\n", base, rgbOut.Shape(), base, labelOut.Shape())
	}

	return nil
}

// previewInverse maps normalized rgb output back to 8-bit values for
// writing; chains without a Normalization pass the array through.
func previewInverse(ch ops.Chain) func(*tensor.Dense) (*tensor.Dense, error) {
	var norm *ops.Normalization
	for _, op := range ch.Operators() {
		if n, ok := op.(*ops.Normalization); ok {
			norm = n
		}
	}
	if norm == nil {
		return func(d *tensor.Dense) (*tensor.Dense, error) { return d, nil }
	}

	return func(d *tensor.Dense) (*tensor.Dense, error) {
		n, err := record.NewNormalized(d, norm.Accepts())
		if err != nil {
			return nil, err
		}
		return norm.Inverse(n)
	}
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *kong.Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "augment %s\n", version)
	return err
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("augment"),
		kong.Description("Key-synchronized image/label augmentation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.Configure(logging.Options{Level: CLI.LogLevel, JSON: CLI.LogJSON})
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
