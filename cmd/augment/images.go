// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/katalvlaran/lvaugment/record"
	"github.com/katalvlaran/lvaugment/tensor"
)

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return img, nil
}

// readColor loads a PNG as a bgr8 raw record of shape (H, W, 3).
func readColor(path string) (record.Raw, error) {
	img, err := decodePNG(path)
	if err != nil {
		return record.Raw{}, err
	}
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	data := make([]byte, 0, h*w*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data = append(data, px.B, px.G, px.R)
		}
	}

	return record.RawFromUint8(data, record.TagColorBGR8, h, w, 3), nil
}

// readLabel loads a PNG as class ids taken from its gray level.
func readLabel(path string) (record.Raw, error) {
	img, err := decodePNG(path)
	if err != nil {
		return record.Raw{}, err
	}
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()
	data := make([]byte, 0, h*w)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			data = append(data, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
		}
	}

	return record.RawFromUint8(data, record.TagSemantic2D, h, w), nil
}

func to8(v float64) uint8 {
	return uint8(tensor.ClampValue(math.Round(v), 0, 255))
}

// writeColor stores a BGR array with values in [0, 255].
func writeColor(path string, d *tensor.Dense) error {
	s := d.Shape()
	if s.Channels != 3 {
		return fmt.Errorf("writeColor %s: %w", s, record.ErrShape)
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	raw := d.Raw()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			i := (y*s.Width + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{B: to8(raw[i]), G: to8(raw[i+1]), R: to8(raw[i+2]), A: 255})
		}
	}

	return encodePNG(path, img)
}

// writeLabel stores class ids as gray levels.
func writeLabel(path string, d *tensor.Dense) error {
	s := d.Shape()
	img := image.NewGray(image.Rect(0, 0, s.Width, s.Height))
	raw := d.Raw()
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			img.SetGray(x, y, color.Gray{Y: to8(raw[(y*s.Width+x)*s.Channels])})
		}
	}

	return encodePNG(path, img)
}

func encodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
