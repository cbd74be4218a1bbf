package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Login godoc
// @Summary Connect a user
// @Description Issues a signed time-limited bearer token for the provided
// @Description username. No credential verification happens on this system.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body Credentials true "User credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/auth/login [post]
func (api *APIHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var creds Credentials
	if err := DecodeRequestBody(r, &creds); err != nil {
		api.logger.Error("failed to login", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusBadRequest, "failed to decode the request body"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	token, err := api.tokenService.Issue(creds.Username)
	if err != nil {
		api.logger.Error("failed to issue token", zap.String("request.id", requestID), zap.Error(err))
		if err = WriteErrorResponse(r.Context(), w, http.StatusInternalServerError, "Error issuing token"); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to login", zap.String("user.name", creds.Username), zap.String("request.id", requestID))
	if err = WriteJSON(r.Context(), w, http.StatusOK, &TokenResponse{Token: token}); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
