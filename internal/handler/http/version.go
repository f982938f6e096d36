package http

import (
	"net/http"

	"github.com/MKhiriev/allocation-ledger/internal/utils"
	"github.com/MKhiriev/allocation-ledger/models"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.StatusResponse{Status: "ok"}, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

func (h *Handler) listAssets(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AssetService.ListAssets(r.Context()), http.StatusOK)
}
