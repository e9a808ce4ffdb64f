package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"goglm/domain/dataset"
	"goglm/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader loads Excel or CSV files into a dataset.Table. The file
// extension picks the format; everything else is shared.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

var _ ports.DatasetReader = (*DataReader)(nil)

// NewDataReader creates a reader for the given .xlsx or .csv file.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: "Sheet1"}
}

// Read loads the file into a column-major table.
func (r *DataReader) Read() (*dataset.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("data file must have a header row and at least one data row")
	}
	return buildTable(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// buildTable coerces each column to numeric when every non-blank cell
// parses as a number, otherwise keeps it categorical.
func buildTable(rows [][]string) (*dataset.Table, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			return nil, fmt.Errorf("column %d has an empty header", i+1)
		}
	}

	data := rows[1:]
	t := dataset.NewTable()
	t.Columns = headers
	t.RowCount = len(data)

	for col, name := range headers {
		cells := make([]string, len(data))
		for i, row := range data {
			if col < len(row) {
				cells[i] = strings.TrimSpace(row[col])
			}
		}
		if numeric, ok := coerceNumeric(cells); ok {
			t.Numeric[name] = numeric
		} else {
			t.Categorical[name] = cells
		}
	}
	return t, nil
}

func coerceNumeric(cells []string) ([]float64, bool) {
	values := make([]float64, len(cells))
	observed := 0
	for i, cell := range cells {
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
		observed++
	}
	// An all-blank column carries no numeric evidence; keep it categorical.
	return values, observed > 0
}
