package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangehq/rangefin/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Transaction Date,Description,Amount\n01/12/2024,Café São Paulo,-5.75\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	content := "Transaction Date,Description,Amount\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	assert.Equal(t, content, decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	text := "Description,Amount\n"

	input := []byte{0xFF, 0xFE}
	for _, r := range text {
		input = append(input, byte(r), 0x00)
	}

	assert.Equal(t, text, decode(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Café Résumé\n" in Windows-1252: é = 0xE9.
	input := []byte{'C', 'a', 'f', 0xE9, ' ', 'R', 0xE9, 's', 'u', 'm', 0xE9, '\n'}

	assert.Equal(t, "Café Résumé\n", decode(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Empty(t, decode(t, nil))
}
