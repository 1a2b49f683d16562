package httperr

import (
	"arcade_backend/internal/model"
	"arcade_backend/pkg/logger"
	"arcade_backend/pkg/resp"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Write - транслирует ошибку игрового сервиса в HTTP статус.
// Неизвестные ошибки не отдаются клиенту как есть
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidWager),
		errors.Is(err, model.ErrIllegalAction),
		errors.Is(err, model.ErrInsufficientFunds):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNoRound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrRoundConflict):
		resp.WriteError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("internal error", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
