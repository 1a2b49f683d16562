package converter

import (
	"arcade_backend/internal/api/dto/auth"
	"arcade_backend/internal/model"
)

func RegisterRequestToUserModel(req *auth.RegisterRequest) *model.User {
	return &model.User{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	}
}
