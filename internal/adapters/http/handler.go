package http

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/publish-review-service/internal/application"
	"github.com/viralforge/publish-review-service/internal/contracts"
	"github.com/viralforge/publish-review-service/internal/domain"
)

type StagingConfig struct {
	Dir            string
	MaxUploadBytes int64
}

type Handler struct {
	service *application.Service
	staging StagingConfig
}

func NewHandler(service *application.Service, staging StagingConfig) *Handler {
	if staging.Dir == "" {
		staging.Dir = "uploads"
	}
	if staging.MaxUploadBytes <= 0 {
		staging.MaxUploadBytes = 500 << 20
	}
	return &Handler{service: service, staging: staging}
}

// upload stages the editor's file locally and drives it through Submit. The
// staged file is a precondition input to the platform uploader, not part of
// the persisted submission.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.staging.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_multipart", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "no file uploaded", requestIDFromContext(r.Context()))
		return
	}
	defer file.Close()

	assetPath, err := h.stage(file, header)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "staging_failed", err.Error(), requestIDFromContext(r.Context()))
		return
	}

	out, err := h.service.Submit(r.Context(), application.SubmitInput{
		AssetPath:     assetPath,
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Keywords:      r.FormValue("keywords"),
		PrivacyStatus: r.FormValue("privacyStatus"),
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "video uploaded and awaiting review", contracts.UploadResponse{
		SubmissionID: out.SubmissionID,
		VideoID:      out.PlatformID,
		State:        string(out.State),
	})
}

func (h *Handler) latestVideo(w http.ResponseWriter, r *http.Request) {
	query := application.CurrentQuery{}
	if raw := strings.TrimSpace(r.URL.Query().Get("state")); raw != "" {
		state, err := domain.ParseState(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "unknown state filter", requestIDFromContext(r.Context()))
			return
		}
		query.State = &state
	}
	sub, found, err := h.service.Current(r.Context(), query)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	if !found {
		writeSuccess(w, http.StatusOK, "no submission", nil)
		return
	}
	writeSuccess(w, http.StatusOK, "", toSubmissionResponse(sub))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	var req contracts.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	out, err := h.service.Approve(r.Context(), application.ApproveInput{
		SubmissionID:  req.SubmissionID,
		PlatformID:    req.VideoID,
		Title:         req.Title,
		Description:   req.Description,
		Keywords:      req.Keywords,
		PrivacyStatus: req.PrivacyStatus,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "video approved", toSubmissionResponse(out))
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	var req contracts.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error(), requestIDFromContext(r.Context()))
		return
	}
	if err := h.service.Reject(r.Context(), application.RejectInput{
		SubmissionID: req.SubmissionID,
		PlatformID:   req.VideoID,
	}); err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "video rejected and removed", nil)
}

func (h *Handler) stage(src multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.staging.Dir, 0o755); err != nil {
		return "", err
	}
	name := filepath.Base(filepath.Clean(header.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = uuid.NewString()
	}
	dst := filepath.Join(h.staging.Dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return dst, nil
}

func toSubmissionResponse(sub domain.Submission) contracts.SubmissionResponse {
	return contracts.SubmissionResponse{
		SubmissionID:  sub.SubmissionID,
		VideoID:       sub.PlatformID,
		Title:         sub.Title,
		Description:   sub.Description,
		Keywords:      sub.Keywords,
		PrivacyStatus: string(sub.Visibility),
		State:         string(sub.State),
		FailureCode:   sub.FailureCode,
		CreatedAt:     sub.CreatedAt.UTC().Format(time.RFC3339),
	}
}
