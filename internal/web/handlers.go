package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dmfedotov/tabload/internal/core"
	"github.com/dmfedotov/tabload/internal/logging"
)

// handleImport accepts a multipart upload (form field "file"), runs the
// import pipeline, and returns the import summary as JSON.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.BadRequestf("no file provided"))
		return
	}
	defer file.Close()

	if header.Size == 0 {
		s.respondError(w, r, core.BadRequestf("the uploaded file is empty"))
		return
	}

	logger.Info("import requested", "file", header.Filename, "size", header.Size)

	result, err := s.service.Import(r.Context(), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, result)
}

// handleHealth reports liveness and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, map[string]string{"status": "ok"})
}
