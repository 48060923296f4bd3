package source

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"id":1,"title":"Shirt","price":19.99,"description":"Cotton","category":"men's clothing","image":"https://img/1.png","rating":{"rate":4.1,"count":120}},
  {"id":2,"title":"Ring","price":"168","description":"Gold","category":"jewelery","image":"https://img/2.png","rating":{"rate":3.9,"count":70}}
]`

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
