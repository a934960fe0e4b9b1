package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Allknowingroger/Image-Fusion/internal/metrics"
	"github.com/Allknowingroger/Image-Fusion/internal/models"
	"github.com/Allknowingroger/Image-Fusion/internal/session"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
)

// State godoc
// @Summary Session state
// @Description Full state of the caller's session: slots, prompt, pending flag, active result and history.
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionState
// @Router /api/session [get]
func (h *FusionHandler) State(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// SetCount godoc
// @Summary Change image count
// @Description Resizes the upload slots. Content below the new count is kept, the rest is discarded.
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.CountRequest true "New image count (2-5)"
// @Success 200 {object} models.SessionState
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/count [put]
func (h *FusionHandler) SetCount(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	var req models.CountRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("request validation failed: %s", err))
		return
	}

	if err := sess.SetImageCount(req.Count); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// SetPrompt godoc
// @Summary Update the prompt
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.PromptRequest true "Prompt text"
// @Success 200 {object} models.SessionState
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/prompt [put]
func (h *FusionHandler) SetPrompt(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	var req models.PromptRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}

	sess.SetPrompt(req.Prompt)
	writeJSON(w, http.StatusOK, sess.State())
}

// UploadSlot godoc
// @Summary Stage an image in a slot
// @Description Multipart upload. Only the first file of a multi-file submission is used; empty content clears the slot; non-image files are rejected.
// @Tags session
// @Accept multipart/form-data
// @Produce json
// @Param index path int true "Slot index"
// @Param file formData file true "Image file"
// @Success 200 {object} models.SessionState
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/slots/{index} [post]
func (h *FusionHandler) UploadSlot(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot index")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid upload: %s", err))
		return
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to open file: %s", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read file: %s", err))
		return
	}

	if err := sess.SetSlot(idx, fh.Filename, fh.Header.Get("Content-Type"), data); err != nil {
		if errors.Is(err, session.ErrNotAnImage) {
			metrics.UploadsTotal("rejected")
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.UploadsTotal("accepted")
	writeJSON(w, http.StatusOK, sess.State())
}

// ClearSlot godoc
// @Summary Remove a staged image
// @Tags session
// @Produce json
// @Param index path int true "Slot index"
// @Success 200 {object} models.SessionState
// @Failure 400 {object} models.ErrorResponse
// @Router /api/session/slots/{index} [delete]
func (h *FusionHandler) ClearSlot(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid slot index")
		return
	}
	if err := sess.ClearSlot(idx); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// Preview godoc
// @Summary Staged image preview
// @Description Serves the bytes of a staged slot. Tokens of replaced or removed slots stop resolving.
// @Tags session
// @Produce image/png
// @Param id path string true "Preview token"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /api/session/previews/{id} [get]
func (h *FusionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	data, mimeType, ok := sess.PreviewBytes(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "preview not found")
		return
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Write(data)
}
