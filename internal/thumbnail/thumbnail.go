// Package thumbnail turns a generated concept image into the value stored
// in Project.Thumbnail.
package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/production-board/internal/infra/storage"
)

const (
	MaxWidth    = 1280
	contentType = "image/webp"
	quality     = 82
)

type Processor struct {
	store storage.ObjectStore
}

// New keeps thumbnails in store, or inline as data URIs when store is nil.
func New(store storage.ObjectStore) *Processor {
	return &Processor{store: store}
}

// Process returns a URL (or data URI) for the re-encoded image.
func (p *Processor) Process(ctx context.Context, projectID string, raw []byte) (string, error) {
	encoded, err := Encode(raw)
	if err != nil {
		return "", err
	}

	if p.store == nil {
		return DataURI(encoded), nil
	}

	key := fmt.Sprintf("thumbnails/%s/%s.webp", projectID, uuid.NewString())
	return p.store.Put(ctx, key, contentType, encoded)
}

// Encode decodes png or jpeg, narrows it to MaxWidth and re-encodes as WebP.
func Encode(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := Fit(src, MaxWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit scales src down to maxWidth keeping the aspect ratio. Narrower images
// are returned untouched.
func Fit(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func DataURI(webpBytes []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(webpBytes)
}
