package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "100MB", want: 100 * 1024 * 1024},
		{in: "1GB", want: 1024 * 1024 * 1024},
		{in: "512KB", want: 512 * 1024},
		{in: "64B", want: 64},
		{in: "2048", want: 2048},
		{in: " 10 MB ", want: 10 * 1024 * 1024},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "-5MB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRotatorRotatesAtSizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	r, err := NewFileRotator(path, 64, 3, false)
	require.NoError(t, err)
	defer r.Close()

	line := []byte(strings.Repeat("x", 40) + "\n")
	_, err = r.Write(line)
	require.NoError(t, err)
	_, err = r.Write(line) // crosses the 64 byte limit, triggers rotation
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	require.NoError(t, err, "expected a rotated file")

	// Current file holds only the latest write.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, line, data)
}

func TestRotatorCompressesRotatedFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	r, err := NewFileRotator(path, 32, 2, true)
	require.NoError(t, err)
	defer r.Close()

	first := []byte("first-generation-line\n")
	_, err = r.Write(first)
	require.NoError(t, err)
	_, err = r.Write([]byte("second-generation-line\n"))
	require.NoError(t, err)

	compressed, err := os.ReadFile(path + ".1.br")
	require.NoError(t, err)

	decompressed, err := io.ReadAll(brotli.NewReader(bytes.NewReader(compressed)))
	require.NoError(t, err)
	assert.Equal(t, first, decompressed)
}

func TestRotatorKeepsMaxFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	r, err := NewFileRotator(path, 8, 2, false)
	require.NoError(t, err)
	defer r.Close()

	for i := 0; i < 6; i++ {
		_, err := r.Write([]byte("0123456789\n"))
		require.NoError(t, err)
	}

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".2")
	assert.NoError(t, err)
	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err), "no more than maxFiles rotated files")
}

func TestRotatorWriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	r, err := NewFileRotator(path, 1024, 1, false)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = r.Write([]byte("late\n"))
	require.Error(t, err)
}
