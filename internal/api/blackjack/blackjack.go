package blackjack

import (
	dto "arcade_backend/internal/api/dto/blackjack"
	"arcade_backend/internal/api/httperr"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
	"net/http"
)

type Handler struct {
	serv service.BlackjackService
}

func NewHandler(serv service.BlackjackService) *Handler {
	return &Handler{serv: serv}
}

func (h *Handler) Deal(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DealRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Deal(r.Context(), converter.ToBlackjackDeal(payload))
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBlackjackResponse(*result))
}

func (h *Handler) Hit(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Hit(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBlackjackResponse(*result))
}

func (h *Handler) Stand(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Stand(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBlackjackResponse(*result))
}

func (h *Handler) Double(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Double(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBlackjackResponse(*result))
}

func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.Split(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBlackjackResponse(*result))
}

// NewRound - принудительно закрывает текущий раунд (ставки возвращаются)
func (h *Handler) NewRound(w http.ResponseWriter, r *http.Request) {
	err := h.serv.NewRound(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	result, err := h.serv.State(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBlackjackResponse(*result))
}
