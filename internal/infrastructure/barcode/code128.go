// Package barcode genera imágenes PNG code128 para etiquetas de producto.
package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Code128Renderer implementa usecase.BarcodeRenderer con code128.
type Code128Renderer struct{}

// NewCode128Renderer construye el renderer.
func NewCode128Renderer() *Code128Renderer { return &Code128Renderer{} }

// RenderPNG codifica value en code128 y lo escala a width x height.
func (r *Code128Renderer) RenderPNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("codificar barcode: %w", err)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("escalar barcode: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}
