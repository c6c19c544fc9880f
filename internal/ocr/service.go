package ocr

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// minDimension is the smallest acceptable image dimension in pixels. Cards
// photographed at lower resolutions are upscaled before recognition.
const minDimension = 1000

// Service handles text extraction from card images: preprocessing, engine
// invocation, and assembly of the recognized lines into a cleaned text block.
type Service struct {
	engine Engine
}

// NewService creates a text extraction service backed by the given engine.
func NewService(engine Engine) *Service {
	return &Service{engine: engine}
}

// ExtractText runs OCR against the image at path and returns the cleaned
// text. An image where the engine finds no text yields ("", nil); engine
// faults are returned as errors. The file at path is left in place; temp
// file cleanup is the caller's responsibility.
func (s *Service) ExtractText(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img = preprocess(img)

	result, err := s.engine.Recognize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("ocr engine %s: %w", s.engine.Name(), err)
	}

	text := joinLines(result.Lines)
	slog.Info("Extracted OCR text", "engine", s.engine.Name(), "format", format, "lines", len(result.Lines), "length", len(text))
	return text, nil
}

// preprocess forces a plain RGB(A) representation and upscales small images
// isotropically so the smaller dimension reaches minDimension, preserving
// aspect ratio.
func preprocess(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	targetW, targetH := width, height
	if min(width, height) < minDimension {
		scale := float64(minDimension) / float64(min(width, height))
		targetW = int(float64(width) * scale)
		targetH = int(float64(height) * scale)
	}

	if _, ok := img.(*image.RGBA); ok && targetW == width && targetH == height {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// joinLines concatenates recognized lines in engine order, trimming each and
// dropping blanks.
func joinLines(lines []Line) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if text := strings.TrimSpace(line.Text); text != "" {
			cleaned = append(cleaned, text)
		}
	}
	return strings.Join(cleaned, "\n")
}
