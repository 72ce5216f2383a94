package integrity_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"drill-eda/core/reconcile"
	"drill-eda/core/storage/mocks"
	"drill-eda/feature/drillhole"
	"drill-eda/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, jobPath string) *fiber.App {
	app := fiber.New()
	integrity.NewHandler(newService(jobPath)).RegisterRoutes(app)
	return app
}

func TestHandleHolesCheck(t *testing.T) {
	path, _ := writeJob(t)
	app := setupTestApp(t, path)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/holes", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "mismatch", body["status"])
	assert.Equal(t, []any{"DH2"}, body["missing_in_assay"])
}

func TestHandleIntervalsCheck(t *testing.T) {
	path, _ := writeJob(t)
	app := setupTestApp(t, path)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/intervals", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "issues", body["status"])
}

func TestHandleSourcesCheck(t *testing.T) {
	path, _ := writeJob(t)
	app := setupTestApp(t, path)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/sources", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body, 2)
}

func TestHandleIntegrityCheck(t *testing.T) {
	path, _ := writeJob(t)
	app := setupTestApp(t, path)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "sources")
	assert.Contains(t, body, "holes")
	assert.Contains(t, body, "intervals")
}

func TestHandleIntegrityCheck_NoJob(t *testing.T) {
	app := setupTestApp(t, "")

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/holes", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleIntegrityCheck_PostedJob(t *testing.T) {
	app := setupTestApp(t, "")

	req := httptest.NewRequest("POST", "/integrity", strings.NewReader(`{"lithology": {"kind": "file"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode, "posted job is validated")
}

func TestHandleIntegrityCheck_PostedPaths(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, dataDir, "lith.csv", lithologyCSV)
	writeFile(t, dataDir, "assay.csv", assayCSV)
	outside := writeFile(t, t.TempDir(), "lith.csv", lithologyCSV)

	logger := zap.NewNop()
	client := new(mocks.Client)
	sources := drillhole.NewService(client, "drillholes", logger, nil, reconcile.Config{QualityPolicy: "skip", DataDir: dataDir})
	app := fiber.New()
	integrity.NewHandler(integrity.NewService(sources, client, "drillholes", logger, nil, "")).RegisterRoutes(app)

	post := func(lithPath string) int {
		body := fmt.Sprintf(`{
			"lithology": {"kind": "file", "path": %q, "columns": {"holeid": "HoleID", "from": "From", "to": "To", "rock": "Rock"}},
			"assay": {"kind": "file", "path": "assay.csv", "columns": {"holeid": "HoleID", "from": "From", "to": "To", "assay_columns": ["Cu"]}}
		}`, lithPath)
		req := httptest.NewRequest("POST", "/integrity", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, 200, post("lith.csv"))
	assert.Equal(t, 400, post(outside))
	assert.Equal(t, 400, post("../lith.csv"))
}

func TestHandleIntegrityCheck_PostedPathsWithoutDataDir(t *testing.T) {
	_, job := writeJob(t)
	app := setupTestApp(t, "")

	body := fmt.Sprintf(`{
		"lithology": {"kind": "file", "path": %q, "columns": {"holeid": "HoleID", "from": "From", "to": "To", "rock": "Rock"}},
		"assay": {"kind": "file", "path": %q, "columns": {"holeid": "HoleID", "from": "From", "to": "To", "assay_columns": ["Cu"]}}
	}`, job.Lithology.Path, job.Assay.Path)
	req := httptest.NewRequest("POST", "/integrity", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out["error"], "disabled")
}
