package ports

import (
	"context"
	"io"
)

// ImageUploader puerto para subir imágenes de producto a un CDN externo.
// Devuelve la URL pública de la imagen subida.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
