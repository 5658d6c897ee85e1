package handlers

import (
	"net/http"

	"github.com/2capper/ballpark/services"
)

type RosterHandler struct {
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ImportRosterHandler скачивает состав со страницы лиги по сохранённой у
// команды ссылке и записывает его в команду.
func (h *RosterHandler) ImportRosterHandler(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	orgID, ok := callerOrganizationID(w, r)
	if !ok {
		return
	}

	entries, err := h.rosterService.ImportRoster(r.Context(), orgID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
