// Package source opens dataset documents from local disk or Google Storage
// and transparently decompresses them.
package source

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"

	dserrors "github.com/nishad/dsquery/internal/errors"
)

const gsPrefix = "gs://"

// Compression identifies how a stream is encoded.
type Compression byte

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZ
	CompressionBZip2
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZip:
		return "zip"
	case CompressionXZ:
		return "xz"
	case CompressionZ:
		return "zlib"
	case CompressionBZip2:
		return "bzip2"
	default:
		return "none"
	}
}

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
// checked in this order; zlib has the shortest, most ambiguous signature.
var signatures = []struct {
	kind Compression
	sig  []byte
}{
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{CompressionZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{CompressionGzip, []byte{0x1f, 0x8b, 0x08}},
	{CompressionBZip2, []byte{0x42, 0x5a, 0x68}},
	{CompressionZ, []byte{0x78, 0x9c}},
	{CompressionZ, []byte{0x78, 0x01}},
	{CompressionZ, []byte{0x78, 0xda}},
}

// Detect inspects the leading bytes of a stream.
func Detect(head []byte) Compression {
	for _, s := range signatures {
		if bytes.HasPrefix(head, s.sig) {
			return s.kind
		}
	}
	return CompressionNone
}

// Open returns a reader over the decompressed contents of path. Paths that
// start with gs:// are read from Google Storage with default credentials.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	const op dserrors.Op = "source.open"

	raw, err := openRaw(ctx, path)
	if err != nil {
		return nil, dserrors.E(op, dserrors.KindIO, err, path)
	}

	rc, err := MaybeDecompress(raw)
	if err != nil {
		dserrors.IgnoreError(raw.Close(), "closing source after decompression failure")
		kind := dserrors.GetKind(err)
		if kind == dserrors.KindUnknown {
			kind = dserrors.KindParse
		}
		return nil, dserrors.E(op, kind, err, path)
	}
	return rc, nil
}

func openRaw(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, gsPrefix) {
		return os.Open(ExpandHome(path))
	}

	bucketName, objectName, err := SplitGSPath(path)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &gsReadCloser{Reader: rdr, client: client}, nil
}

// gsReadCloser releases both the object reader and its client.
type gsReadCloser struct {
	*storage.Reader
	client *storage.Client
}

func (g *gsReadCloser) Close() error {
	rerr := g.Reader.Close()
	cerr := g.client.Close()
	if rerr != nil {
		return rerr
	}
	return cerr
}

// SplitGSPath splits gs://bucket/object into its bucket and object names.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("tried to split google storage path %q into bucket and object, got %d parts", path, len(pathParts))
	}
	return pathParts[0], pathParts[1], nil
}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, path[2:])
	}
	return path
}

// MaybeDecompress wraps rc in a decompressor when its leading bytes match a
// known signature. Closing the result closes rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	head, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, dserrors.E(dserrors.KindIO, err)
	}

	var r io.Reader
	switch Detect(head) {
	case CompressionGzip:
		r, err = gzip.NewReader(br)
	case CompressionZip:
		zr := zipstream.NewReader(br)
		if _, err = zr.Next(); err == nil {
			r = zr
		}
	case CompressionBZip2:
		r = bzip2.NewReader(br)
	case CompressionXZ:
		r, err = xz.NewReader(br, 0)
	case CompressionZ:
		r, err = zlib.NewReader(br)
	default:
		r = br
	}
	if err != nil {
		return nil, err
	}

	return &readCloser{Reader: r, closer: rc}, nil
}

// readCloser pairs a decoding reader with the underlying source's Close.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (c *readCloser) Close() error {
	if rc, ok := c.Reader.(io.Closer); ok {
		dserrors.IgnoreError(rc.Close(), "closing decompressor")
	}
	return c.closer.Close()
}
