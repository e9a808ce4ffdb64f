package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goglm/domain/dataset"
)

func testApp() *App {
	table := dataset.NewTable()
	table.Columns = []string{"score", "dose", "group"}
	table.Numeric["score"] = []float64{1, 2, 3, 4}
	table.Numeric["dose"] = []float64{10, 20, 30, 40}
	table.Categorical["group"] = []string{"a", "b", "a", "b"}
	table.RowCount = 4
	return NewApp(nil, nil, table)
}

func doJSON(t *testing.T, app *App, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleParse(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/formula/parse",
		`{"formula": "y ~ a + b + a:b"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Spec struct {
			Outcome      string     `json:"outcome"`
			Predictors   []string   `json:"predictors"`
			Interactions [][]string `json:"interactions"`
		} `json:"spec"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Spec.Outcome != "y" || len(resp.Spec.Predictors) != 2 || len(resp.Spec.Interactions) != 1 {
		t.Errorf("Unexpected spec: %+v", resp.Spec)
	}
}

func TestHandleParse_MalformedFormula(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/formula/parse", `{"formula": "y + a"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for malformed formula, got %d", rec.Code)
	}
}

func TestHandleCompose(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/formula/compose",
		`{"outcome": "y", "predictors": ["a", "b"], "interactions": ["a:b"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "y ~ a + b + a:b") {
		t.Errorf("Unexpected compose response: %s", rec.Body.String())
	}
}

func TestHandleCompose_SingleStringPredictor(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/formula/compose",
		`{"outcome": "y", "predictors": "a"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "y ~ a") {
		t.Errorf("Unexpected compose response: %s", rec.Body.String())
	}
}

func TestHandleCompose_WrongShape(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/formula/compose",
		`{"outcome": "y", "predictors": ["a"], "interactions": 42}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for numeric interactions, got %d", rec.Code)
	}
}

func TestHandleComposeSEM_NotImplemented(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/formula/sem", `{"y": ["a"]}`)
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("Expected 501 for SEM composition, got %d", rec.Code)
	}
}

func TestHandleDescribe(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/describe",
		`{"formula": "score ~ dose + group", "group": "group"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "overall") || !strings.Contains(body, "groups") {
		t.Errorf("Expected overall and grouped sections, got: %s", body)
	}
}

func TestHandleDescribe_StructuredModel(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/describe",
		`{"model": {"outcome": "score", "predictors": ["dose"]}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDescribe_NoModelSelector(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/describe", `{}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 without formula or model, got %d", rec.Code)
	}
}

func TestHandleDescribe_NoDataset(t *testing.T) {
	app := NewApp(nil, nil, nil)
	rec := doJSON(t, app, "POST", "/api/describe", `{"formula": "y ~ a"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 without dataset, got %d", rec.Code)
	}
}

func TestHandleCorrelate(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/correlate",
		`{"formula": "score ~ dose"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "variables") {
		t.Errorf("Expected correlation matrix, got: %s", rec.Body.String())
	}
}

func TestHandleSimulateThenDescribe(t *testing.T) {
	app := NewApp(nil, nil, nil)
	rec := doJSON(t, app, "POST", "/api/dataset/simulate",
		`{"rows": 100, "seed": 5, "columns": [
			{"name": "y", "dist": "normal", "mu": 0, "sigma": 1},
			{"name": "x", "dist": "normal", "mu": 2, "sigma": 1}
		]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, app, "POST", "/api/describe", `{"formula": "y ~ x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 after simulate, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandlePower(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/power",
		`{"sample_sizes": [20, 50], "failure_rate": 0.02, "failure_threshold": 0.1, "sims": 200, "seed": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "points") {
		t.Errorf("Expected power points, got: %s", rec.Body.String())
	}
}

func TestHandleModels_NoDatabase(t *testing.T) {
	rec := doJSON(t, testApp(), "POST", "/api/models",
		`{"name": "m1", "formula": "y ~ a"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without database, got %d", rec.Code)
	}
}
