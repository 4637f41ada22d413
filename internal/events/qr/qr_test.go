package qr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpt-event/internal/events/qr"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestShareURL(t *testing.T) {
	gen := qr.NewGenerator("http://localhost:8080/")
	assert.Equal(t, "http://localhost:8080/events/42", gen.ShareURL(42))
}

func TestGeneratePNG(t *testing.T) {
	gen := qr.NewGenerator("http://localhost:8080")

	png, err := gen.GeneratePNG(1, 256)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "expected a PNG image")
}

func TestGeneratePNGDefaultSize(t *testing.T) {
	gen := qr.NewGenerator("http://localhost:8080")

	png, err := gen.GeneratePNG(1, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
