package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/charity-reports-api/internal/application/export"
)

var _ export.Renderer = (*JSONRenderer)(nil)

// JSONRenderer serializa el payload completo (no las hojas) con sangría de dos espacios.
// El orden de claves es estable: campos en orden de declaración y mapas ordenados.
type JSONRenderer struct{}

// NewJSONRenderer construye el renderizador.
func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

// Render implementa export.Renderer.
func (r *JSONRenderer) Render(_ context.Context, doc *export.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc.Payload); err != nil {
		return nil, fmt.Errorf("json: codificar payload: %w", err)
	}
	return buf.Bytes(), nil
}
