// make-icns converts a raster image into a macOS .icns icon container.
//
// The source is cropped to a square centered on its opaque content, resized
// to a 1024×1024 master, and encoded with every representation macOS
// expects (16 through 1024 px edges).
//
// Usage: make-icns <input_png> <output_icns> [fill_ratio]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/jackmordaunt/icns/v3"

	// Extra decoders so inputs beyond PNG/JPEG/GIF open as well.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"make-icns/internal/icon"
	"make-icns/internal/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 2 || len(args) > 3 {
		usage()
		return 1
	}

	inputPath := args[0]
	outputPath := args[1]

	fillRatio := icon.DefaultFillRatio
	if len(args) == 3 {
		v, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			ui.Error("Invalid fill ratio: " + args[2])
			usage()
			return 1
		}
		fillRatio = v
	}

	if _, err := os.Stat(inputPath); err != nil {
		ui.Error("Icon source not found: " + inputPath)
		return 1
	}

	ui.Info(fmt.Sprintf("Preparing icon from %s (fill ratio %.2f)", inputPath, fillRatio))
	if err := convert(inputPath, outputPath, fillRatio); err != nil {
		ui.Error(err.Error())
		return 1
	}

	ui.Success("Wrote icon: " + outputPath)
	return 0
}

func convert(inputPath, outputPath string, fillRatio float64) error {
	src, err := imaging.Open(inputPath)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	prepared := icon.Prepare(src, fillRatio)

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	// The encoder derives all required sub-resolutions from the master.
	if err := icns.Encode(out, prepared); err != nil {
		return fmt.Errorf("encoding icns: %w", err)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: make-icns <input_png> <output_icns> [fill_ratio]")
}
