package mines

import (
	dto "arcade_backend/internal/api/dto/mines"
	"arcade_backend/internal/api/httperr"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
	"net/http"
)

type Handler struct {
	serv service.MinesService
}

func NewHandler(serv service.MinesService) *Handler {
	return &Handler{serv: serv}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.StartRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Start(r.Context(), converter.ToMinesStart(payload))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMinesResponse(*result))
}

func (h *Handler) Pick(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PickRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Pick(r.Context(), payload.Tile)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMinesResponse(*result))
}

func (h *Handler) CashOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.CashOut(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMinesResponse(*result))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.State(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToMinesResponse(*result))
}
