package dataset

import (
	"math"
	"testing"

	"goglm/domain/core"
)

func testTable() *Table {
	t := NewTable()
	t.Columns = []string{"score", "group"}
	t.Numeric["score"] = []float64{1, math.NaN(), 3}
	t.Categorical["group"] = []string{"a", "b", ""}
	t.RowCount = 3
	return t
}

func TestKind(t *testing.T) {
	table := testTable()

	kind, err := table.Kind("score")
	if err != nil || kind != KindNumeric {
		t.Errorf("Kind(score) = %v, %v; want numeric", kind, err)
	}
	kind, err = table.Kind("group")
	if err != nil || kind != KindCategorical {
		t.Errorf("Kind(group) = %v, %v; want categorical", kind, err)
	}
	if _, err := table.Kind("missing"); !core.IsNotFoundError(err) {
		t.Errorf("Kind(missing) error = %v; want not found", err)
	}
}

func TestHasAll(t *testing.T) {
	table := testTable()

	if missing, ok := table.HasAll([]string{"score", "group"}); !ok {
		t.Errorf("HasAll reported %q missing", missing)
	}
	missing, ok := table.HasAll([]string{"score", "dose"})
	if ok || missing != "dose" {
		t.Errorf("HasAll = %q, %v; want dose, false", missing, ok)
	}
}

func TestVariable(t *testing.T) {
	table := testTable()

	key, err := core.ParseVariableKey("score")
	if err != nil {
		t.Fatalf("ParseVariableKey: %v", err)
	}
	kind, err := table.Variable(key)
	if err != nil || kind != KindNumeric {
		t.Errorf("Variable(score) = %v, %v; want numeric", kind, err)
	}
}

func TestMissingHelpers(t *testing.T) {
	values := []float64{1, math.NaN(), 3, math.NaN()}

	if n := MissingCount(values); n != 2 {
		t.Errorf("MissingCount = %d; want 2", n)
	}
	observed := DropMissing(values)
	if len(observed) != 2 || observed[0] != 1 || observed[1] != 3 {
		t.Errorf("DropMissing = %v; want [1 3]", observed)
	}
}

func TestPairwiseComplete(t *testing.T) {
	x := []float64{1, math.NaN(), 3, 4}
	y := []float64{2, 4, math.NaN(), 8}

	xs, ys := PairwiseComplete(x, y)
	if len(xs) != 2 || len(ys) != 2 {
		t.Fatalf("PairwiseComplete kept %d rows; want 2", len(xs))
	}
	if xs[0] != 1 || ys[0] != 2 || xs[1] != 4 || ys[1] != 8 {
		t.Errorf("PairwiseComplete = %v, %v", xs, ys)
	}
}
