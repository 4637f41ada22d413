package qr

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generator renders share-link QR codes for events.
type Generator struct {
	BaseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{BaseURL: strings.TrimRight(baseURL, "/")}
}

// ShareURL is the public frontend route for a single event.
func (g *Generator) ShareURL(eventID int64) string {
	return fmt.Sprintf("%s/events/%d", g.BaseURL, eventID)
}

// GeneratePNG encodes the share URL as a PNG QR image. A non-positive
// size falls back to the default.
func (g *Generator) GeneratePNG(eventID int64, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	png, err := qrcode.Encode(g.ShareURL(eventID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR: %w", err)
	}
	return png, nil
}
