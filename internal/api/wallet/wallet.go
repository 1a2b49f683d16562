package wallet

import (
	dto "arcade_backend/internal/api/dto/wallet"
	"arcade_backend/internal/api/httperr"
	"arcade_backend/internal/converter"
	"arcade_backend/internal/model"
	"arcade_backend/internal/service"
	"arcade_backend/pkg/req"
	"arcade_backend/pkg/resp"
	"net/http"
)

type Handler struct {
	serv service.WalletService
}

func NewHandler(serv service.WalletService) *Handler {
	return &Handler{serv: serv}
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	balance, err := h.serv.Deposit(r.Context(), payload.Amount)
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBalanceResponse(model.WalletData{Balance: balance}))
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	data, err := h.serv.Balance(r.Context())
	if err != nil {
		httperr.Write(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBalanceResponse(*data))
}
