package slots

import (
	dto "arcade_backend/internal/api/dto/slots"
	"arcade_backend/internal/api/httperr"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
	"net/http"
)

type Handler struct {
	serv service.SlotsService
}

func NewHandler(serv service.SlotsService) *Handler {
	return &Handler{serv: serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToSlotsSpin(payload))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSlotsResponse(*result))
}
