package handlers

import (
	"net/http"

	"github.com/2capper/ballpark/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

func NewScheduleHandler(scheduleService services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

type saveSlotsRequest struct {
	Slots map[string]services.SlotInput `json:"slots"`
}

// SaveSlotsHandler принимает полную карту расписания слотов плей-офф.
// Отсутствующие в карте слоты удаляются, пустая карта чистит расписание.
func (h *ScheduleHandler) SaveSlotsHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	divisionID, err := urlParam(r, "divisionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	orgID, ok := callerOrganizationID(w, r)
	if !ok {
		return
	}

	var req saveSlotsRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.scheduleService.SaveSlots(r.Context(), orgID, tournamentID, divisionID, req.Slots)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
