package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Allknowingroger/Image-Fusion/internal/models"
	"github.com/Allknowingroger/Image-Fusion/internal/service"
	"github.com/Allknowingroger/Image-Fusion/internal/session"
	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
)

type fuseService interface {
	Fuse(ctx context.Context, sess *session.Session) (*models.FusionResult, error)
}

type FusionHandler struct {
	service        fuseService
	sessions       *session.Manager
	maxUploadBytes int64
}

func NewFusionHandler(service fuseService, sessions *session.Manager, maxUploadBytes int64) *FusionHandler {
	return &FusionHandler{
		service:        service,
		sessions:       sessions,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes mounts the session and fusion API. Every route below shares the
// session cookie middleware.
func (h *FusionHandler) Routes(r chi.Router) {
	r.Use(h.WithSession)

	r.Get("/session", h.State)
	r.Put("/session/count", h.SetCount)
	r.Put("/session/prompt", h.SetPrompt)
	r.Post("/session/slots/{index}", h.UploadSlot)
	r.Delete("/session/slots/{index}", h.ClearSlot)
	r.Get("/session/previews/{id}", h.Preview)

	r.Post("/fuse", h.Fuse)
	r.Get("/history", h.History)
	r.Post("/history/{id}/select", h.SelectResult)
	r.Get("/results/{id}/image", h.ResultImage)
	r.Get("/results/{id}/download", h.DownloadResult)
	r.Get("/prompts/examples", h.PromptExamples)
}

// Fuse godoc
// @Summary Fuse the staged images
// @Description Runs one fusion over the staged images and the prompt. One run per session at a time.
// @Tags fusion
// @Accept json
// @Produce json
// @Param request body models.FuseRequest false "Optional prompt override"
// @Success 200 {object} models.FusionResult
// @Failure 400 {object} models.ErrorResponse "Prompt or slots missing"
// @Failure 409 {object} models.ErrorResponse "A fusion is already running"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/fuse [post]
func (h *FusionHandler) Fuse(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	var req models.FuseRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if req.Prompt != "" {
		sess.SetPrompt(req.Prompt)
	}

	result, err := h.service.Fuse(r.Context(), sess)
	switch {
	case errors.Is(err, session.ErrFusionPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNotReady):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

// History godoc
// @Summary Fusion history
// @Description Past results of this session, newest first, at most ten.
// @Tags fusion
// @Produce json
// @Success 200 {array} models.FusionResult
// @Router /api/history [get]
func (h *FusionHandler) History(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.State().History)
}

// SelectResult godoc
// @Summary Bring a history entry back
// @Description Makes the chosen entry the active result without reordering history.
// @Tags fusion
// @Produce json
// @Param id path int true "Result id"
// @Success 200 {object} models.SessionState
// @Failure 404 {object} models.ErrorResponse
// @Router /api/history/{id}/select [post]
func (h *FusionHandler) SelectResult(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid result id")
		return
	}
	if _, err := sess.SelectResult(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// ResultImage godoc
// @Summary Fused image bytes
// @Tags fusion
// @Produce image/png
// @Param id path int true "Result id"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /api/results/{id}/image [get]
func (h *FusionHandler) ResultImage(w http.ResponseWriter, r *http.Request) {
	h.serveResult(w, r, false)
}

// DownloadResult godoc
// @Summary Download the fused image
// @Tags fusion
// @Produce image/png
// @Param id path int true "Result id"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /api/results/{id}/download [get]
func (h *FusionHandler) DownloadResult(w http.ResponseWriter, r *http.Request) {
	h.serveResult(w, r, true)
}

func (h *FusionHandler) serveResult(w http.ResponseWriter, r *http.Request, download bool) {
	sess := h.sessionOr500(w, r)
	if sess == nil {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid result id")
		return
	}

	res, ok := sess.Result(id)
	if !ok {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}

	data, err := res.Bytes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to decode image: %s", err))
		return
	}

	w.Header().Set("Content-Type", res.MimeType)
	if download {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resultFileName(res)))
	}
	w.Write(data)
}

func resultFileName(r *models.FusionResult) string {
	ext := strings.TrimPrefix(r.MimeType, "image/")
	if ext == "" || ext == r.MimeType {
		ext = "png"
	}
	return fmt.Sprintf("fusion-%d.%s", r.ID, ext)
}

// PromptExamples godoc
// @Summary Example prompts
// @Tags fusion
// @Produce json
// @Success 200 {object} models.ExamplesResponse
// @Router /api/prompts/examples [get]
func (h *FusionHandler) PromptExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.ExamplesResponse{Examples: service.PromptExamples()})
}

// Ready godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ready [get]
func (h *FusionHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
