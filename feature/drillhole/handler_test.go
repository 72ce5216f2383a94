package drillhole_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"drill-eda/core/database"
	"drill-eda/core/reconcile"
	"drill-eda/core/storage/mocks"
	"drill-eda/core/table"
	"drill-eda/feature/drillhole"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestApp serves a service whose data directory is a fresh temp dir.
func setupTestApp(t *testing.T) (*fiber.App, string) {
	dataDir := t.TempDir()
	app := fiber.New()
	svc := newService(reconcile.Config{QualityPolicy: "skip", DataDir: dataDir})
	drillhole.NewHandler(svc).RegisterRoutes(app)
	return app, dataDir
}

// jobJSON writes the fixtures into dataDir and references them relatively.
func jobJSON(t *testing.T, dataDir, policy string) string {
	writeFile(t, dataDir, "lith.csv", lithologyCSV)
	writeFile(t, dataDir, "assay.csv", assayCSV)
	return fmt.Sprintf(`{
		"lithology": {"kind": "file", "path": "lith.csv", "columns": {"holeid": "HoleID", "from": "From", "to": "To", "rock": "Lith"}},
		"assay": {"kind": "file", "path": "assay.csv", "columns": {"holeid": "Hole", "from": "From", "to": "To", "assay_columns": ["Cu", "Au"]}},
		"quality_policy": %q
	}`, policy)
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandlers_BeforeRun(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, target := range []string{
		"/drillhole/table",
		"/drillhole/lithology",
		"/drillhole/orewaste?grade=Cu&cutoff=0.5",
		"/drillhole/stats/GRN",
		"/drillhole/histogram/Cu",
	} {
		status, body := doJSON(t, app, "GET", target, "")
		assert.Equal(t, fiber.StatusConflict, status, target)
		assert.Contains(t, body["error"], "run a reconciliation first")
	}
}

func TestHandleReconcile(t *testing.T) {
	app, dataDir := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/drillhole/reconcile", jobJSON(t, dataDir, "skip"))
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["run_id"])
	assert.Equal(t, false, body["cached"])

	report := body["report"].(map[string]any)
	assert.Equal(t, float64(6), report["intervals"])

	status, body = doJSON(t, app, "GET", "/drillhole/table", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []any{"ID", "FROM", "TO", "ROCK", "Cu", "Au"}, body["columns"])
	rows := body["rows"].([]any)
	require.Len(t, rows, 6)
	assert.Equal(t, []any{"DH1", float64(4), float64(5), "SST", nil, nil}, rows[3])
}

func TestHandleReconcile_BadRequests(t *testing.T) {
	app, dataDir := setupTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"Invalid JSON", "{"},
		{"Missing Kind", `{"lithology": {}, "assay": {}}`},
		{"Unknown Policy", jobJSON(t, dataDir, "ignore")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", "/drillhole/reconcile", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Contains(t, body["error"], "configuration error")
		})
	}
}

func TestHandleTable_CSV(t *testing.T) {
	app, dataDir := setupTestApp(t)
	status, _ := doJSON(t, app, "POST", "/drillhole/reconcile", jobJSON(t, dataDir, "skip"))
	require.Equal(t, fiber.StatusOK, status)

	resp, err := app.Test(httptest.NewRequest("GET", "/drillhole/table?format=csv", nil))
	require.NoError(t, err)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "ID,FROM,TO,ROCK,Cu,Au", lines[0])
	assert.Len(t, lines, 7)
}

func TestHandleAnalyses(t *testing.T) {
	app, dataDir := setupTestApp(t)
	status, _ := doJSON(t, app, "POST", "/drillhole/reconcile", jobJSON(t, dataDir, "skip"))
	require.Equal(t, fiber.StatusOK, status)

	t.Run("OreWaste", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/drillhole/orewaste?grade=Cu&cutoff=0.65", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body["ore"], 1)
		assert.Len(t, body["waste"], 2)
	})

	t.Run("OreWaste Bad Params", func(t *testing.T) {
		status, _ := doJSON(t, app, "GET", "/drillhole/orewaste?grade=Cu&cutoff=high", "")
		assert.Equal(t, fiber.StatusBadRequest, status)

		status, _ = doJSON(t, app, "GET", "/drillhole/orewaste?grade=Zn&cutoff=1", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Filter", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/drillhole/filter", `{"categorical": {"ROCK": ["GRN"]}, "numeric": {"Cu": {"min": 0.6, "max": 1}}}`)
		require.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body["rows"], 1)
	})

	t.Run("Filter Unknown Column", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/drillhole/filter", `{"numeric": {"Zn": {"min": 0, "max": 1}}}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("Stats", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/drillhole/stats/GRN", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "GRN", body["rock"])
		assert.Equal(t, float64(2), body["rows"])
	})

	t.Run("Histogram", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/drillhole/histogram/Cu?bins=2&cap=0.6", "")
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, float64(4), body["samples"])
		assert.Len(t, body["bins"], 2)
	})

	t.Run("Histogram Too Many Bins", func(t *testing.T) {
		status, body := doJSON(t, app, "GET", "/drillhole/histogram/Cu?bins=1000000000", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body["error"], "bins")
	})

	t.Run("Lithology", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/drillhole/lithology", nil))
		require.NoError(t, err)
		var out []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Len(t, out, 3, "DH3 has no assay and is dropped")
	})

	t.Run("Export File", func(t *testing.T) {
		status, body := doJSON(t, app, "POST", "/drillhole/export", `{"kind": "file", "path": "out.csv"}`)
		require.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, float64(6), body["rows"])
		assert.FileExists(t, filepath.Join(dataDir, "out.csv"))
	})

	t.Run("Export Bad Target", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/drillhole/export", `{"kind": "ftp"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestHandleReconcile_Reject(t *testing.T) {
	app, dataDir := setupTestApp(t)
	writeFile(t, dataDir, "bad_lith.csv", "HoleID,From,To,Lith\nDH1,2,1,GRN\n")
	writeFile(t, dataDir, "assay.csv", assayCSV)
	body := `{
		"lithology": {"kind": "file", "path": "bad_lith.csv", "columns": {"holeid": "HoleID", "from": "From", "to": "To", "rock": "Lith"}},
		"assay": {"kind": "file", "path": "assay.csv", "columns": {"holeid": "Hole", "from": "From", "to": "To", "assay_columns": ["Cu"]}},
		"quality_policy": "reject"
	}`

	status, out := doJSON(t, app, "POST", "/drillhole/reconcile", body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out["error"], "data quality")
}

func TestHandleReconcile_OutsideDataDir(t *testing.T) {
	app, dataDir := setupTestApp(t)
	outside := writeFile(t, t.TempDir(), "lith.csv", lithologyCSV)
	writeFile(t, dataDir, "assay.csv", assayCSV)

	tests := []struct {
		name string
		path string
	}{
		{"Absolute", outside},
		{"Parent", "../lith.csv"},
		{"Parent After Clean", "sub/../../lith.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fmt.Sprintf(`{
				"lithology": {"kind": "file", "path": %q, "columns": {"holeid": "HoleID", "from": "From", "to": "To", "rock": "Lith"}},
				"assay": {"kind": "file", "path": "assay.csv", "columns": {"holeid": "Hole", "from": "From", "to": "To", "assay_columns": ["Cu"]}}
			}`, tt.path)
			status, out := doJSON(t, app, "POST", "/drillhole/reconcile", body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Contains(t, out["error"], "lithology.path")
		})
	}
}

func TestHandleExport_Rejections(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE lithology ("HoleID" TEXT, "From" REAL, "To" REAL, "Lith" TEXT)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO lithology VALUES ('DH1', 0, 3, 'GRN'), ('DH1', 3, 5, 'SST'), ('DH2', 0, 4, 'BX')`).Error)

	dataDir := t.TempDir()
	writeFile(t, dataDir, "assay.csv", assayCSV)
	app := fiber.New()
	svc := drillhole.NewService(new(mocks.Client), "drillholes", zap.NewNop(), db, reconcile.Config{QualityPolicy: "skip", DataDir: dataDir})
	drillhole.NewHandler(svc).RegisterRoutes(app)

	status, _ := doJSON(t, app, "POST", "/drillhole/reconcile", `{
		"lithology": {"kind": "database", "table": "lithology", "columns": {"holeid": "HoleID", "from": "From", "to": "To", "rock": "Lith"}},
		"assay": {"kind": "file", "path": "assay.csv", "columns": {"holeid": "Hole", "from": "From", "to": "To", "assay_columns": ["Cu", "Au"]}}
	}`)
	require.Equal(t, fiber.StatusOK, status)

	outside := filepath.Join(t.TempDir(), "x.csv")
	rejected := []struct {
		name string
		body string
		key  string
	}{
		{"Absolute File", fmt.Sprintf(`{"kind": "file", "path": %q}`, outside), "export.path"},
		{"Parent File", `{"kind": "file", "path": "../x.csv"}`, "export.path"},
		{"Source Table", `{"kind": "database", "table": "lithology", "replace": true}`, "export.table"},
		{"Run Log Table", `{"kind": "database", "table": "reconcile_runs", "replace": true}`, "export.table"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			status, out := doJSON(t, app, "POST", "/drillhole/export", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Contains(t, out["error"], tt.key)
		})
	}
	assert.NoFileExists(t, outside)

	t.Run("Replace Required", func(t *testing.T) {
		status, _ := doJSON(t, app, "POST", "/drillhole/export", `{"kind": "database", "table": "merged"}`)
		require.Equal(t, fiber.StatusOK, status)

		status, out := doJSON(t, app, "POST", "/drillhole/export", `{"kind": "database", "table": "merged"}`)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, out["error"], "export.replace")

		status, _ = doJSON(t, app, "POST", "/drillhole/export", `{"kind": "database", "table": "merged", "replace": true}`)
		assert.Equal(t, fiber.StatusOK, status)
	})

	back, err := table.DBSource{DB: db, Table: "lithology"}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, back.Len())
}

func TestHandleExport_NoDataDir(t *testing.T) {
	app := fiber.New()
	drillhole.NewHandler(newService(reconcile.Config{QualityPolicy: "skip"})).RegisterRoutes(app)

	status, out := doJSON(t, app, "POST", "/drillhole/export", `{"kind": "file", "path": "out.csv"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, out["error"], "disabled")
}
