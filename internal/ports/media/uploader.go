package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxImageBytes replica la regla `max:2048` (KB) de las fotos.
const MaxImageBytes int64 = 2048 * 1024

var (
	ErrNotConfigured = errors.New("media host not configured")
	ErrNotImage      = errors.New("file is not an image")
	ErrTooLarge      = errors.New("image exceeds 2048 kilobytes")
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/bmp":     {},
	"image/webp":    {},
	"image/svg+xml": {},
}

// Upload describe un archivo a subir al host de medios.
type Upload struct {
	Folder   string
	PublicID string
	Filename string
	Body     io.Reader
}

// Uploader sube un archivo y devuelve su URL segura (https).
type Uploader interface {
	Upload(ctx context.Context, in Upload) (string, error)
}

// Disabled se usa cuando no hay CLOUDINARY_URL: cualquier subida falla explícitamente.
type Disabled struct{}

func (Disabled) Upload(context.Context, Upload) (string, error) {
	return "", ErrNotConfigured
}

// OpenImage valida tamaño y tipo (por contenido, no por extensión) y devuelve el archivo listo para leer.
func OpenImage(fh *multipart.FileHeader) (multipart.File, error) {
	if fh == nil {
		return nil, ErrNotImage
	}
	if fh.Size > MaxImageBytes {
		return nil, ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !isImage(head[:n], fh.Filename) {
		_ = f.Close()
		return nil, ErrNotImage
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	return f, nil
}

func isImage(head []byte, filename string) bool {
	ct := http.DetectContentType(head)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	if _, ok := allowedImageTypes[ct]; ok {
		return true
	}
	// DetectContentType no reconoce SVG: lo aceptamos si el contenido es XML con <svg.
	if strings.HasSuffix(strings.ToLower(filename), ".svg") {
		return strings.Contains(strings.ToLower(string(head)), "<svg")
	}
	return false
}
