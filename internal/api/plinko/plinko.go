package plinko

import (
	dto "arcade_backend/internal/api/dto/plinko"
	"arcade_backend/internal/api/httperr"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
	"net/http"
)

type Handler struct {
	serv service.PlinkoService
}

func NewHandler(serv service.PlinkoService) *Handler {
	return &Handler{serv: serv}
}

func (h *Handler) Drop(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DropRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Drop(r.Context(), converter.ToPlinkoDrop(payload))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPlinkoResponse(*result))
}
