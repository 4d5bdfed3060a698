package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FarukBas12/servistakip-sub000/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Turkish characters should pass through unchanged.
	input := "Ürün Adı;Miktar\nVida M6;10\nContalı Musluk;15\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1254(t *testing.T) {
	// Windows-1254 encoded "Ürün Adı;Birim\n".
	// In Windows-1254: Ü = 0xDC, ü = 0xFC, ı = 0xFD
	turkishBytes := []byte{
		0xDC, 'r', 0xFC, 'n', ' ', 'A', 'd', 0xFD, ';',
		'B', 'i', 'r', 'i', 'm', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(turkishBytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Ürün Adı;Birim\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Ürün Adı;Miktar\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Ürün Adı;Miktar\n", string(got))
}
