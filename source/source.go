package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/midbel/motion"
)

var (
	ErrFormat  = errors.New("unsupported dataset format")
	ErrKey     = errors.New("entity without key")
	ErrColumn  = errors.New("missing column")
	ErrRequest = errors.New("request does not end with success result code")
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CSV  Format = "csv"
)

func ParseFormat(str string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(str, "."))); f {
	case JSON, YAML, CSV:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, str)
	}
}

const (
	DefaultKey  = "name"
	DefaultTime = "year"
)

// Options controls how a dataset is read. Key names the field giving the key
// of each entity. Time names the column holding the sample times of a CSV
// file where each row is one entity at one time.
type Options struct {
	Format Format
	Key    string
	Time   string
	Meta   motion.Metadata
	Client *http.Client
}

func (o Options) key() string {
	if o.Key == "" {
		return DefaultKey
	}
	return o.Key
}

func (o Options) time() string {
	if o.Time == "" {
		return DefaultTime
	}
	return o.Time
}

// Load reads the dataset found at location, a local path or an http url.
// The format is guessed from the extension unless given in opts. Files
// compressed with gzip or zstd are decompressed on the fly.
func Load(ctx context.Context, location string, opts Options) (*motion.Dataset, error) {
	if opts.Format == "" {
		f, err := guessFormat(location)
		if err != nil {
			return nil, err
		}
		opts.Format = f
	}
	r, err := readFrom(ctx, location, opts.Client)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r, opts)
}

func Decode(r io.Reader, opts Options) (*motion.Dataset, error) {
	rc, err := decompress(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch opts.Format {
	case JSON:
		return decodeJSON(rc, opts)
	case YAML:
		return decodeYAML(rc, opts)
	case CSV:
		return decodeCSV(rc, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, opts.Format)
	}
}

func guessFormat(location string) (Format, error) {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}
	ext := filepath.Ext(location)
	switch ext {
	case ".gz", ".zst", ".zstd":
		ext = filepath.Ext(strings.TrimSuffix(location, ext))
	}
	return ParseFormat(ext)
}

func readFrom(ctx context.Context, location string, client *http.Client) (io.ReadCloser, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		if client == nil {
			client = http.DefaultClient
		}
		res, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			res.Body.Close()
			return nil, fmt.Errorf("%s: %w (%d)", location, ErrRequest, res.StatusCode)
		}
		return res.Body, nil
	case "", "file":
		return os.Open(u.Path)
	default:
		return nil, fmt.Errorf("%s: unsupported scheme", u.Scheme)
	}
}

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// decompress looks at the first bytes of r to find whether it is compressed.
func decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(magicZstd))
	switch {
	case bytes.HasPrefix(head, magicGzip):
		z, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return z, nil
	case bytes.HasPrefix(head, magicZstd):
		z, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return z.IOReadCloser(), nil
	default:
		return io.NopCloser(br), nil
	}
}
