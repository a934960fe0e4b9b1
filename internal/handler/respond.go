package handler

import (
	"net/http"

	"github.com/Allknowingroger/Image-Fusion/internal/models"
	"github.com/bytedance/sonic"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// past this point encode failures are connection failures
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, models.ErrorResponse{Error: msg})
}
