package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Lienzo A4 a 200 dpi y geometría del marco de página (inset ~5 mm).
const (
	borderCanvasW = 1654
	borderCanvasH = 2339
	borderInset   = 39
	borderStroke  = 4
)

// Maroto solo acepta la imagen de fondo como archivo, así que el marco se
// rasteriza una vez por color de paleta y se cachea en un temporal.
var borderAssets = struct {
	mu    sync.Mutex
	paths map[string]string
}{paths: map[string]string{}}

func borderAssetPath(hex string, c *props.Color) (string, error) {
	borderAssets.mu.Lock()
	defer borderAssets.mu.Unlock()
	if p, ok := borderAssets.paths[hex]; ok {
		return p, nil
	}

	data, err := borderPNG(c)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "cotizador-marco-*.png")
	if err != nil {
		return "", fmt.Errorf("pdf: crear marco temporal: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("pdf: escribir marco temporal: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pdf: cerrar marco temporal: %w", err)
	}

	borderAssets.paths[hex] = f.Name()
	return f.Name(), nil
}

// borderPNG dibuja el marco rectangular del color dado sobre fondo
// transparente; el resto de la página queda sin tocar.
func borderPNG(c *props.Color) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, borderCanvasW, borderCanvasH))
	tint := color.NRGBA{R: uint8(c.Red), G: uint8(c.Green), B: uint8(c.Blue), A: 255}

	for x := borderInset; x < borderCanvasW-borderInset; x++ {
		for t := 0; t < borderStroke; t++ {
			img.SetNRGBA(x, borderInset+t, tint)
			img.SetNRGBA(x, borderCanvasH-borderInset-1-t, tint)
		}
	}
	for y := borderInset; y < borderCanvasH-borderInset; y++ {
		for t := 0; t < borderStroke; t++ {
			img.SetNRGBA(borderInset+t, y, tint)
			img.SetNRGBA(borderCanvasW-borderInset-1-t, y, tint)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("pdf: codificar marco: %w", err)
	}
	return buf.Bytes(), nil
}
