package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"catalyst/internal/domain"
	"catalyst/pkg/bundle"
)

// Analyze handles the upload endpoint: one multipart file in, the dashboard
// payload out.
func (a *App) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes())

	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes()); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		a.error(w, http.StatusBadRequest, "No file part")
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		// A file input submitted with nothing selected posts filename="",
		// which the multipart parser files under the form values.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			a.error(w, http.StatusBadRequest, "No selected file")
			return
		}
		a.error(w, http.StatusBadRequest, "No file part")
		return
	}
	header := files[0]

	file, err := header.Open()
	if err != nil {
		a.error(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}

	payload, err := a.Engine.Analyze(r.Context(), header.Filename, bytes.NewReader(raw))
	if err != nil {
		if domain.IsParseError(err) {
			a.error(w, http.StatusBadRequest, err.Error())
			return
		}
		a.Logger.Error().Err(err).Str("filename", header.Filename).Msg("analysis failed")
		a.error(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.archiveUpload(r.Context(), header.Filename, raw, payload)

	a.json(w, http.StatusOK, payload)
}

// archiveUpload snapshots the raw upload and its payload as one zip in the
// archive store. Failures are logged, never surfaced to the client.
func (a *App) archiveUpload(ctx context.Context, filename string, raw []byte, payload *domain.AnalysisPayload) {
	if a.Archive == nil {
		return
	}
	doc, err := json.Marshal(payload)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("archive payload marshal failed")
		return
	}
	blob, err := bundle.Archive([]bundle.File{
		{Name: "upload/" + filepath.Base(filename), Data: raw},
		{Name: "payload.json", Data: doc},
	})
	if err != nil {
		a.Logger.Warn().Err(err).Msg("archive bundle failed")
		return
	}
	key, err := a.Archive.WriteUnique(ctx, "analyses", ".zip", blob)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("archive write failed")
		return
	}
	a.Logger.Debug().Str("key", key).Msg("analysis archived")
}
