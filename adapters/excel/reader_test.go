package excel

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestRead_CSVCoercesColumns(t *testing.T) {
	path := writeCSV(t, "score,group,dose\n1.5,control,10\n2.5,treat,20\n,control,30\n")
	table, err := NewDataReader(path).Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if table.RowCount != 3 {
		t.Errorf("Expected 3 rows, got %d", table.RowCount)
	}
	score, ok := table.Numeric["score"]
	if !ok {
		t.Fatal("Expected score to be numeric")
	}
	if score[0] != 1.5 || score[1] != 2.5 {
		t.Errorf("Unexpected score values: %v", score)
	}
	if !math.IsNaN(score[2]) {
		t.Errorf("Expected blank cell to read as NaN, got %f", score[2])
	}
	if _, ok := table.Categorical["group"]; !ok {
		t.Error("Expected group to be categorical")
	}
	if _, ok := table.Numeric["dose"]; !ok {
		t.Error("Expected dose to be numeric")
	}
}

func TestRead_MixedColumnStaysCategorical(t *testing.T) {
	path := writeCSV(t, "code\n12\nA7\n9\n")
	table, err := NewDataReader(path).Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, ok := table.Categorical["code"]; !ok {
		t.Error("Expected column with non-numeric cells to stay categorical")
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := NewDataReader("/nonexistent/data.csv").Read(); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "a,b\n")
	if _, err := NewDataReader(path).Read(); err == nil {
		t.Fatal("Expected error for file without data rows")
	}
}
