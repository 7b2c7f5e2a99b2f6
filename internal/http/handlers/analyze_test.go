package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"catalyst/internal/engine"
	"catalyst/internal/infra"
	"catalyst/internal/storage"
)

func testApp(t *testing.T, archiveDir string) *App {
	t.Helper()
	cfg := &infra.Config{MaxUploadMB: 1, PreviewRows: 3}
	logger := zerolog.New(io.Discard)
	eng := engine.New(engine.Options{PreviewRows: cfg.PreviewRows, Logger: &logger})
	var store *storage.FileStore
	if archiveDir != "" {
		var err error
		store, err = storage.NewFileStore(archiveDir)
		require.NoError(t, err)
	}
	return NewApp(eng, cfg, logger, store)
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func postUpload(app *App, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	app.Analyze(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAnalyzeHandlerHappyPath(t *testing.T) {
	app := testApp(t, "")
	body, ctype := multipartBody(t, "file", "orders.csv", "amount,city\n1,oslo\n2,bergen\n")

	rec := postUpload(app, body, ctype)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Rows             int                          `json:"rows"`
		CleanScore       int                          `json:"clean_score"`
		MissingValues    int                          `json:"missing_values"`
		AnalysisSections map[string][]json.RawMessage `json:"analysis_sections"`
		Preview          []map[string]any             `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 2, payload.Rows)
	require.Equal(t, 100, payload.CleanScore)
	require.Equal(t, 0, payload.MissingValues)
	require.Len(t, payload.AnalysisSections, 3)
	require.Len(t, payload.Preview, 2)
}

func TestAnalyzeHandlerMissingFilePart(t *testing.T) {
	app := testApp(t, "")
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	rec := postUpload(app, buf, mw.FormDataContentType())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No file part", errorMessage(t, rec))
}

func TestAnalyzeHandlerEmptySelection(t *testing.T) {
	app := testApp(t, "")
	body, ctype := multipartBody(t, "file", "", "ignored")

	rec := postUpload(app, body, ctype)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No selected file", errorMessage(t, rec))
}

func TestAnalyzeHandlerUnsupportedFormat(t *testing.T) {
	app := testApp(t, "")
	body, ctype := multipartBody(t, "file", "notes.txt", "hello there")

	rec := postUpload(app, body, ctype)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Unsupported file format", errorMessage(t, rec))
}

func TestAnalyzeHandlerOversizeUpload(t *testing.T) {
	app := testApp(t, "")
	big := strings.Repeat("x", int(app.Config.MaxUploadBytes())+1024)
	body, ctype := multipartBody(t, "file", "big.csv", big)

	rec := postUpload(app, body, ctype)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, "File is too large", errorMessage(t, rec))
}

func TestAnalyzeHandlerNonMultipartBody(t *testing.T) {
	app := testApp(t, "")
	rec := postUpload(app, bytes.NewBufferString("amount\n1\n"), "text/csv")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No file part", errorMessage(t, rec))
}

func TestAnalyzeHandlerArchivesUpload(t *testing.T) {
	dir := t.TempDir()
	app := testApp(t, dir)
	body, ctype := multipartBody(t, "file", "orders.csv", "amount\n1\n2\n")

	rec := postUpload(app, body, ctype)
	require.Equal(t, http.StatusOK, rec.Code)

	matches, err := filepath.Glob(filepath.Join(dir, "analyses", "*.zip"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	names := []string{zr.File[0].Name, zr.File[1].Name}
	require.Contains(t, names, "upload/orders.csv")
	require.Contains(t, names, "payload.json")
}

func TestHealthHandler(t *testing.T) {
	app := testApp(t, "")
	rec := httptest.NewRecorder()
	app.Health(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
