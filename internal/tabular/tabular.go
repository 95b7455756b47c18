package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

// Format is a recognised tabular file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", topsis.ErrUnsupportedFormat, filepath.Base(name))
	}
}

// Load reads the dataset at path. A missing path is reported before an
// unrecognised extension.
func Load(path string) (*topsis.Table, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", topsis.ErrMissingInput, path)
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", topsis.ErrMissingInput, err)
	}
	defer f.Close()
	return Read(format, f)
}

// ReadNamed reads a dataset whose format is implied by name, e.g. the
// filename of an upload.
func ReadNamed(name string, r io.Reader) (*topsis.Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	return Read(format, r)
}

// Read parses r in the given format. The first row is the header. Any
// parse failure is reported as topsis.ErrUnsupportedFormat.
func Read(format Format, r io.Reader) (*topsis.Table, error) {
	var rows [][]string
	var err error
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", topsis.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read input file: %v", topsis.ErrUnsupportedFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: unable to read input file: no header row", topsis.ErrUnsupportedFormat)
	}
	return &topsis.Table{Header: rows[0], Rows: rows[1:]}, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// readXLSX reads the stored cell values of the first sheet, ignoring number
// formats. Rows shorter than the header are padded with empty cells, as the
// spreadsheet omits trailing blanks. A non-blank cell beyond the header
// width is an error; blank ones are dropped.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for _, rec := range raw {
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 {
		width := len(rows[0])
		for i, rec := range rows {
			switch {
			case len(rec) < width:
				padded := make([]string, width)
				copy(padded, rec)
				rows[i] = padded
			case len(rec) > width:
				if !isBlank(rec[width:]) {
					return nil, fmt.Errorf("row %d has %d cells, header has %d", i, len(rec), width)
				}
				rows[i] = rec[:width]
			}
		}
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes the result table, header first.
func WriteCSV(w io.Writer, res *topsis.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(res.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(res.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// SaveCSV writes the result table to path.
func SaveCSV(path string, res *topsis.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	if err := WriteCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
