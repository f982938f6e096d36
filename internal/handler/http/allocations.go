package http

import (
	"net/http"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/utils"
	"github.com/MKhiriev/allocation-ledger/models"
)

// recordAllocation adds the posted amount to the client's allocation in the
// posted asset. It answers 201 when a new allocation was created and 200
// when an existing one was topped up.
func (h *Handler) recordAllocation(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.AllocationRequest
	if err = decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	allocation, merged, err := h.services.AllocationService.RecordAllocation(r.Context(), clientID, request.AssetCode, request.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().
		Int64("allocation_id", allocation.ID).
		Bool("merged", merged).
		Msg("allocation recorded")

	status := http.StatusCreated
	if merged {
		status = http.StatusOK
	}
	utils.WriteJSON(w, allocation, status)
}

func (h *Handler) listAllocations(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	allocations, err := h.services.AllocationService.ListAllocations(r.Context(), clientID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, allocations, http.StatusOK)
}

func (h *Handler) editAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "alocacaoId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.AllocationUpdate
	if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	update.ID = id

	allocation, err := h.services.AllocationService.EditAllocation(r.Context(), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, allocation, http.StatusOK)
}

func (h *Handler) deleteAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "alocacaoId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.AllocationService.DeleteAllocation(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
