// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePair stores a w×h gradient color PNG and a two-class label PNG.
func writePair(t *testing.T, dir string, w, h int) (rgbPath, labelPath string) {
	t.Helper()
	rgb := image.NewNRGBA(image.Rect(0, 0, w, h))
	lbl := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rgb.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), B: 200, A: 255})
			if x >= w/2 {
				lbl.SetGray(x, y, color.Gray{Y: 1})
			}
		}
	}
	rgbPath = filepath.Join(dir, "rgb.png")
	labelPath = filepath.Join(dir, "label.png")
	require.NoError(t, encodePNG(rgbPath, rgb))
	require.NoError(t, encodePNG(labelPath, lbl))

	return rgbPath, labelPath
}

func TestRun_EvalPreviewMatchesInput(t *testing.T) {
	dir := t.TempDir()
	rgbPath, labelPath := writePair(t, dir, 6, 4)
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	cmd := &RunCmd{RGB: rgbPath, Label: labelPath, Variant: "eval", Key: "k", Repeat: 1, Out: out}
	require.NoError(t, cmd.run(&stdout))
	assert.Contains(t, stdout.String(), "k_eval_0_rgb.png")

	want, err := readColor(rgbPath)
	require.NoError(t, err)
	got, err := readColor(filepath.Join(out, "k_eval_0_rgb.png"))
	require.NoError(t, err)
	assert.Equal(t, want, got, "eval at native size round-trips through normalization")

	wantLabel, err := readLabel(labelPath)
	require.NoError(t, err)
	gotLabel, err := readLabel(filepath.Join(out, "k_eval_0_label.png"))
	require.NoError(t, err)
	assert.Equal(t, wantLabel, gotLabel)
}

func TestRun_TrainRepeatsWithConfig(t *testing.T) {
	dir := t.TempDir()
	rgbPath, labelPath := writePair(t, dir, 8, 8)
	cfgPath := filepath.Join(dir, "pipeline.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("schema_version: v1\npipeline:\n  target: [4, 4]\n  seed: 5\n"), 0o600))
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	cmd := &RunCmd{Config: cfgPath, RGB: rgbPath, Label: labelPath, Repeat: 3, Out: out}
	require.NoError(t, cmd.run(&stdout))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 6)
	for _, line := range lines {
		assert.Contains(t, line, "_train_")
		assert.Contains(t, line, "4x4")
	}
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 6)
}

func TestRun_DumpConfig(t *testing.T) {
	dir := t.TempDir()
	rgbPath, labelPath := writePair(t, dir, 6, 4)

	var stdout bytes.Buffer
	cmd := &RunCmd{RGB: rgbPath, Label: labelPath, Repeat: 1, Out: dir, DumpConfig: true}
	require.NoError(t, cmd.run(&stdout))
	assert.Contains(t, stdout.String(), "schema_version: v1")
	assert.Contains(t, stdout.String(), "variant: train")
}

func TestRun_RejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	rgbPath, labelPath := writePair(t, dir, 6, 4)

	cmd := &RunCmd{RGB: rgbPath, Label: labelPath, Repeat: 0, Out: dir}
	assert.Error(t, cmd.run(&bytes.Buffer{}))

	cmd = &RunCmd{RGB: rgbPath, Label: labelPath, Variant: "test", Repeat: 1, Out: dir}
	assert.Error(t, cmd.run(&bytes.Buffer{}))
}
