package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grana-dev/grana/internal/model"
)

// Format describes a supported bank CSV format.
type Format struct {
	ID              string
	Name            string
	DateLayout      string
	RequiresInvoice bool // credit-card formats group by billing cycle
}

// Parser converts a bank CSV export into transaction candidates.
type Parser interface {
	Parse(r io.Reader) ([]model.Candidate, error)
	Format() Format
}

// ParseError reports a structurally malformed CSV file. It aborts the whole
// import; there is no partial import of a broken file.
type ParseError struct {
	FormatID string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s CSV: %v", e.FormatID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format id.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format().ID)
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for a format id, or nil.
func (r *Registry) Get(formatID string) Parser {
	return r.parsers[strings.ToLower(formatID)]
}

// Formats returns the metadata of all registered formats.
func (r *Registry) Formats() []Format {
	var formats []Format
	for _, p := range r.parsers {
		formats = append(formats, p.Format())
	}
	return formats
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&NubankParser{})
	r.Register(&NubankCardParser{})
	r.Register(&InterParser{})
	r.Register(&GenericParser{})
	return r
}

// readRows parses a CSV-with-header blob into RawRows keyed by column name.
// Structural errors (bad quoting, uneven field counts, missing required
// columns) return a *ParseError.
func readRows(r io.Reader, formatID string, required ...string) ([]model.RawRow, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{FormatID: formatID, Err: err}
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}
	for _, col := range required {
		if !containsColumn(header, col) {
			return nil, &ParseError{FormatID: formatID, Err: fmt.Errorf("missing column %q", col)}
		}
	}

	var rows []model.RawRow
	for _, rec := range records[1:] {
		row := make(model.RawRow, len(header))
		for i, col := range header {
			row[col] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func containsColumn(header []string, col string) bool {
	for _, h := range header {
		if h == col {
			return true
		}
	}
	return false
}

// importDir is the subdirectory for statement CSVs waiting to be imported.
const importDir = "import"

// processedDir is the subdirectory for already-imported CSVs.
const processedDir = "import/processed"

// Scan returns CSV files in <dataDir>/import/.
func Scan(dataDir string) ([]FileInfo, error) {
	dir := filepath.Join(dataDir, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(dataDir, fileName string) error {
	src := filepath.Join(dataDir, importDir, fileName)
	dstDir := filepath.Join(dataDir, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
