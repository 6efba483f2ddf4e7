package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"structdetect/domain/core"
	"structdetect/internal"

	"github.com/xuri/excelize/v2"
)

// cellCleaner strips characters the pasted-text form cannot carry. Tabs and
// newlines would split cells; double quotes would toggle the detector's
// quote state because the "" escape is not supported.
var cellCleaner = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ", `"`, "'")

// DataReader implements ports.TabularReaderPort for CSV, TSV, plain text and XLSX uploads
type DataReader struct {
	config Config
	logger *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and text files
func NewDataReader(config Config, logger *internal.Logger) *DataReader {
	if config.MaxBytes <= 0 {
		config.MaxBytes = DefaultConfig().MaxBytes
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, logger: logger}
}

// KindOf classifies a filename by extension
func KindOf(filename string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return KindCSV, true
	case ".tsv", ".tab":
		return KindTSV, true
	case ".txt", "":
		return KindText, true
	case ".xlsx", ".xlsm":
		return KindXLSX, true
	default:
		return "", false
	}
}

// Supports reports whether the filename has an extension this reader handles
func (r *DataReader) Supports(filename string) bool {
	_, ok := KindOf(filename)
	return ok
}

// ReadText converts an upload to tab-separated pasted-text form
func (r *DataReader) ReadText(ctx context.Context, filename string, src io.Reader) (string, error) {
	kind, ok := KindOf(filename)
	if !ok {
		return "", core.NewUnsupportedFormatError(filename)
	}

	data, err := r.readLimited(src)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	var text string
	switch kind {
	case KindText, KindTSV:
		text, err = decodeText(bytes.NewReader(data))
	case KindCSV:
		var table *Table
		if table, err = r.readCSV(data); err == nil {
			text = table.Text()
		}
	case KindXLSX:
		var table *Table
		if table, err = r.readWorkbook(data); err == nil {
			text = table.Text()
		}
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", core.ErrEmptySource, filename)
	}

	r.logger.Debug("[DataReader] %s file %s converted in %.2fms (%d bytes)",
		strings.ToUpper(string(kind)), filename, float64(time.Since(start).Nanoseconds())/1e6, len(text))
	return text, nil
}

func (r *DataReader) readLimited(src io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(src, r.config.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > r.config.MaxBytes {
		return nil, core.NewInputTooLargeError(len(data), int(r.config.MaxBytes))
	}
	return data, nil
}

// readCSV parses CSV with lenient quoting and ragged rows
func (r *DataReader) readCSV(data []byte) (*Table, error) {
	text, err := decodeText(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode CSV file: %v", core.ErrUnreadableSource, err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV file: %v", core.ErrUnreadableSource, err)
	}
	return &Table{Rows: rows}, nil
}

// readWorkbook reads the configured sheet, or the first one
func (r *DataReader) readWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", core.ErrUnreadableSource, err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrEmptySource)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", core.ErrUnreadableSource, sheet, err)
	}
	return &Table{Sheet: sheet, Rows: rows}, nil
}

// Text renders the table as tab-separated lines, dropping rows with no content
func (t *Table) Text() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		empty := true
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cellCleaner.Replace(cell))
			if cells[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(cells, "\t"))
	}
	return sb.String()
}
