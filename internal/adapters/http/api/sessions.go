package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/fairway/internal/adapters/repository"
	"github.com/okian/fairway/internal/domain/types"
)

// SessionDependencies defines the interface for session operations.
type SessionDependencies interface {
	Sessions(ctx context.Context) []types.SessionInfo
	UploadSession(ctx context.Context, filename string, data []byte) (string, error)
}

// SessionsHandler handles session listing and uploads.
type SessionsHandler struct {
	deps     SessionDependencies
	maxBytes int64
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies, maxBytes int64) *SessionsHandler {
	return &SessionsHandler{deps: deps, maxBytes: maxBytes}
}

// HandleSessions dispatches GET (list) and POST (upload) on /sessions.
func (h *SessionsHandler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Sessions(r.Context()))
	case http.MethodPost:
		h.handleUpload(w, r)
	default:
		http.NotFound(w, r)
	}
}

// handleUpload accepts a session export either as a multipart form with a
// "file" part or as a raw body with a ?name= query parameter.
func (h *SessionsHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload_session"

	filename, data, err := h.readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	name, err := h.deps.UploadSession(r.Context(), filename, data)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMissingClubColumn),
			errors.Is(err, repository.ErrUnsupportedFile):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Status: "stored", File: name})
}

func (h *SessionsHandler) readUpload(r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxBytes)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("missing file part: %w", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("read file part: %w", err)
		}
		return header.Filename, data, nil
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		return "", nil, ErrMissingFileName
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	return name, data, nil
}
