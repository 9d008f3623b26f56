package handler

import (
	"encoding/json"
	"errors"
	"go-voice-api/common"
	"go-voice-api/logger"
	"go-voice-api/model"
	"go-voice-api/service"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PhoneHandler struct {
	service service.IPhoneService
}

func NewPhoneHandler(service service.IPhoneService) *PhoneHandler {
	return &PhoneHandler{service: service}
}

// CreatePhoneNumber godoc
// @Summary      Register a phone number
// @Tags         phone_numbers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreatePhoneNumberRequest true "phone number payload"
// @Success      201  {object}  model.PhoneNumber
// @Router       /phone_numbers [post]
func (h *PhoneHandler) CreatePhoneNumber(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	var req model.CreatePhoneNumberRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	log := logger.Log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"label":   req.Label,
	})
	log.Info("Create phone number request received")

	phone, err := h.service.CreatePhoneNumber(user.ID, req)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not create phone number", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(phone)
	return nil
}

// ListPhoneNumbers godoc
// @Summary      List own phone numbers
// @Tags         phone_numbers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.PhoneNumber
// @Router       /phone_numbers [get]
func (h *PhoneHandler) ListPhoneNumbers(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	phones, err := h.service.ListPhoneNumbers(user.ID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve phone numbers", err)
	}
	if phones == nil {
		phones = []*model.PhoneNumber{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(phones)
	return nil
}

// GetPhoneNumber godoc
// @Summary      Get a phone number by ID
// @Description  Service-key callers read any row by ID; user sessions only their own
// @Tags         phone_numbers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "phone number ID"
// @Success      200  {object}  model.PhoneNumber
// @Failure      404  {object}  common.AppError
// @Router       /phone_numbers/{id} [get]
func (h *PhoneHandler) GetPhoneNumber(w http.ResponseWriter, r *http.Request) *common.AppError {
	authCtx, ok := authContextFrom(r)
	if !ok {
		return common.NewUnauthorizedError(nil)
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return common.NewInvalidInputError("Invalid phone number ID", err)
	}

	phone, err := h.service.GetPhoneNumber(authCtx, id)
	if err != nil {
		if errors.Is(err, service.ErrPhoneNumberNotFound) {
			return common.NewNotFoundError("Phone number not found")
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve phone number", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(phone)
	return nil
}

// DeletePhoneNumber godoc
// @Summary      Delete an own phone number
// @Tags         phone_numbers
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "phone number ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  common.AppError
// @Router       /phone_numbers/{id} [delete]
func (h *PhoneHandler) DeletePhoneNumber(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return common.NewInvalidInputError("Invalid phone number ID", err)
	}

	if err := h.service.DeletePhoneNumber(user.ID, id); err != nil {
		if errors.Is(err, service.ErrPhoneNumberNotFound) {
			return common.NewNotFoundError("Phone number not found")
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete phone number", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	return nil
}
