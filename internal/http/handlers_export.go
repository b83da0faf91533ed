package httpx

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/target/marketplace-console/internal/export"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/service"
)

// csvDownload sets the download headers on first write, so a failed export can still answer
// with an ordinary error response.
type csvDownload struct {
	w        http.ResponseWriter
	filename string
	started  bool
}

func (d *csvDownload) Write(p []byte) (int, error) {
	if !d.started {
		d.started = true
		h := d.w.Header()
		h.Set("Content-Type", "text/csv; charset=utf-8")
		h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, d.filename))
		h.Set("Cache-Control", "no-store")
		d.w.WriteHeader(http.StatusOK)
	}
	return d.w.Write(p)
}

// ExportCSV downloads a dataset as CSV. The file name picks the dataset, e.g. users.csv.
// GET /api/admin/export/{file}?preset=&search=.
func (h *APIHandlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	dataset := export.Dataset(strings.TrimSuffix(strings.ToLower(r.PathValue("file")), ".csv"))
	if !dataset.Valid() {
		h.fail(w, r, apperrors.NotFoundf("No export named %q.", r.PathValue("file")))
		return
	}
	q := r.URL.Query()
	out := &csvDownload{
		w:        w,
		filename: fmt.Sprintf("%s-%s.csv", dataset, time.Now().UTC().Format("20060102")),
	}
	n, err := h.Export.Export(r.Context(), requestSession(r), service.ExportRequest{
		Dataset: dataset,
		Preset:  strings.TrimSpace(q.Get("preset")),
		Search:  strings.TrimSpace(q.Get("search")),
	}, out)
	switch {
	case err != nil && !out.started:
		h.fail(w, r, err)
	case err != nil:
		// headers are gone; the truncated body is all the client gets
		h.logger().ErrorContext(r.Context(), "export aborted mid-stream", "dataset", dataset, "error", err)
	default:
		h.logger().InfoContext(r.Context(), "export downloaded", "dataset", dataset, "rows", n)
	}
}

// ExportPresets lists the column presets for a dataset.
// GET /api/admin/export/presets?dataset=users.
func (h *APIHandlers) ExportPresets(w http.ResponseWriter, r *http.Request) {
	dataset := export.Dataset(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("dataset"))))
	if !dataset.Valid() {
		h.fail(w, r, apperrors.ValidationField("dataset", "Unknown dataset."))
		return
	}
	names := h.Export.Presets(dataset)
	if names == nil {
		names = []string{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"dataset": dataset, "presets": names})
}
