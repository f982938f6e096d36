package http

import (
	"net/http"

	"github.com/MKhiriev/allocation-ledger/internal/utils"
	"github.com/MKhiriev/allocation-ledger/models"
)

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var request models.ClientRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	client, err := h.services.ClientService.CreateClient(r.Context(), request.ToClient())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, client, http.StatusCreated)
}

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	filter, err := clientFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.services.ClientService.ListClients(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) searchClients(w http.ResponseWriter, r *http.Request) {
	filter, err := clientFilterFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	clients, err := h.services.ClientService.SearchClients(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, clients, http.StatusOK)
}

func (h *Handler) getClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	client, err := h.services.ClientService.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, client, http.StatusOK)
}

func (h *Handler) updateClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.ClientUpdate
	if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	update.ID = id

	client, err := h.services.ClientService.UpdateClient(r.Context(), update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, client, http.StatusOK)
}

func (h *Handler) deleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.ClientService.DeleteClient(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getAllocationCount answers with the obfuscated number of allocations of
// one client.
func (h *Handler) getAllocationCount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	count, err := h.services.CountObfuscator.ObfuscateCount(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, count, http.StatusOK)
}
