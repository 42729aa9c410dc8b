package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExtension(t *testing.T) {
	assert.True(t, SupportedExtension("resume.pdf"))
	assert.True(t, SupportedExtension("RESUME.DOCX"))
	assert.True(t, SupportedExtension("a/b/resume.txt"))
	assert.False(t, SupportedExtension("resume.xyz"))
	assert.False(t, SupportedExtension("resume"))
}

func TestDocumentReaderTxt(t *testing.T) {
	reader, err := NewDocumentReader(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe\njane@email.com"), 0644))

	text, err := reader.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\njane@email.com", text)
}

func TestDocumentReaderUnsupportedFormat(t *testing.T) {
	reader, err := NewDocumentReader(context.Background())
	require.NoError(t, err)

	_, err = reader.Read(context.Background(), "resume.xyz")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDocumentReaderCorruptDocx(t *testing.T) {
	reader, err := NewDocumentReader(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("这不是一个zip文件"), 0644))

	_, err = reader.Read(context.Background(), path)
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestDocumentReaderBytes(t *testing.T) {
	reader, err := NewDocumentReader(context.Background())
	require.NoError(t, err)

	text, err := reader.ReadBytes(context.Background(), []byte("hello"), "note.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	_, err = reader.ReadBytes(context.Background(), []byte("x"), "note.bin")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
