package source

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dserrors "github.com/nishad/dsquery/internal/errors"
)

const payload = `<root><group id="G1"><sample id="S1"/></group></root>`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open(%s) failed: %v", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(data)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want Compression
	}{
		{"xml", []byte("<root>"), CompressionNone},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, CompressionGzip},
		{"zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x14}, CompressionZip},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, CompressionXZ},
		{"bzip2", []byte("BZh91AY"), CompressionBZip2},
		{"zlib", []byte{0x78, 0x9c, 0x01}, CompressionZ},
		{"short", []byte{0x1f}, CompressionNone},
		{"empty", nil, CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.head); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenPlain(t *testing.T) {
	path := writeFile(t, "dataset.xml", []byte(payload))
	if got := readAll(t, path); got != payload {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestOpenGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(payload))
	zw.Close()

	path := writeFile(t, "dataset.xml.gz", buf.Bytes())
	if got := readAll(t, path); got != payload {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestOpenZlib(t *testing.T) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	zw.Write([]byte(payload))
	zw.Close()

	path := writeFile(t, "dataset.xml.z", buf.Bytes())
	if got := readAll(t, path); got != payload {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestOpenZipFirstEntry(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("dataset.xml")
	if err != nil {
		t.Fatalf("failed to create zip entry: %v", err)
	}
	w.Write([]byte(payload))
	zw.Close()

	path := writeFile(t, "dataset.zip", buf.Bytes())
	if got := readAll(t, path); got != payload {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.xml", nil)
	if got := readAll(t, path); got != "" {
		t.Errorf("expected empty content, got %q", got)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.xml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !dserrors.IsKind(err, dserrors.KindIO) {
		t.Errorf("expected io error, got %v (%v)", dserrors.GetKind(err), err)
	}
	if !strings.Contains(err.Error(), "missing.xml") {
		t.Errorf("error should name the path, got %q", err.Error())
	}
}

func TestOpenCorruptGzip(t *testing.T) {
	path := writeFile(t, "bad.gz", []byte{0x1f, 0x8b, 0x08, 0xff, 0xff})
	_, err := Open(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for truncated gzip header")
	}
	if !dserrors.IsKind(err, dserrors.KindParse) {
		t.Errorf("expected parse error, got %v", dserrors.GetKind(err))
	}
}

func TestSplitGSPath(t *testing.T) {
	bucket, object, err := SplitGSPath("gs://my-bucket/cohorts/dataset.xml")
	if err != nil {
		t.Fatalf("SplitGSPath failed: %v", err)
	}
	if bucket != "my-bucket" || object != "cohorts/dataset.xml" {
		t.Errorf("got bucket=%q object=%q", bucket, object)
	}

	for _, bad := range []string{"gs://bucket-only", "gs:///object", "gs://bucket/"} {
		if _, _, err := SplitGSPath(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := ExpandHome("~/data/dataset.xml"); got != "/home/tester/data/dataset.xml" {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/dataset.xml"); got != "/abs/dataset.xml" {
		t.Errorf("absolute path should be unchanged, got %q", got)
	}
}
