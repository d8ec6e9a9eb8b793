package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
)

// StdinSource selects standard input as the dataset source.
const StdinSource = "-"

const utf8BOM = "\ufeff"

// Sentinel errors for dataset loading.
var (
	ErrEmptySource   = errors.New("dataset source is empty")
	ErrMissingHeader = errors.New("dataset has no header row")
	ErrMalformedCSV  = errors.New("malformed CSV")
	ErrFetchFailed   = errors.New("dataset fetch failed")
)

// Loader reads a dataset from a file path, standard input or an HTTP(S) URL.
type Loader struct {
	// Client fetches URL sources. Defaults to http.DefaultClient.
	Client *http.Client
	// Stdin is read for StdinSource. Defaults to os.Stdin.
	Stdin io.Reader
	// Logger receives load diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Load reads and normalizes the dataset at source with a default Loader.
func Load(ctx context.Context, source string) ([]Record, error) {
	return (&Loader{}).Load(ctx, source)
}

// Load reads the dataset at source and normalizes every row.
func (l *Loader) Load(ctx context.Context, source string) ([]Record, error) {
	raw, err := l.LoadRaw(ctx, source)
	if err != nil {
		return nil, err
	}

	return Normalize(raw), nil
}

// LoadRaw reads the dataset at source without normalizing it.
func (l *Loader) LoadRaw(ctx context.Context, source string) ([]RawRecord, error) {
	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	counter := &countingReader{r: rc}

	rows, skipped, err := ReadCSV(counter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	l.logger().InfoContext(ctx, "dataset loaded",
		"source", source,
		"rows", len(rows),
		"skipped", skipped,
		"size", humanize.Bytes(uint64(counter.n)))

	return rows, nil
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)

	switch {
	case source == "":
		return nil, ErrEmptySource
	case source == StdinSource:
		if l.Stdin != nil {
			return io.NopCloser(l.Stdin), nil
		}

		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}

		return f, nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()

		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, url, resp.Status)
	}

	return resp.Body, nil
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}

	return slog.Default()
}

// ReadCSV parses CSV text with a header row into raw records. Header names are
// trimmed and lowercased. Rows may be ragged: missing cells are absent from
// the record and extra cells are ignored. Rows the CSV reader rejects are
// skipped and counted.
func ReadCSV(r io.Reader) (rows []RawRecord, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, ErrMissingHeader
	}

	if err != nil {
		return nil, 0, wrapParseError(err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}

		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	rows = []RawRecord{}

	for {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(readErr, &parseErr) {
			skipped++

			continue
		}

		if readErr != nil {
			return nil, skipped, fmt.Errorf("%w: %w", ErrMalformedCSV, readErr)
		}

		rows = append(rows, buildRow(columns, fields))
	}

	return rows, skipped, nil
}

func buildRow(columns, fields []string) RawRecord {
	row := make(RawRecord, len(columns))

	for i, column := range columns {
		if i >= len(fields) {
			break
		}

		if column == "" {
			continue
		}

		row[column] = fields[i]
	}

	return row
}

func wrapParseError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: line %d: %w", ErrMalformedCSV, parseErr.Line, parseErr.Err)
	}

	return fmt.Errorf("%w: %w", ErrMalformedCSV, err)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
