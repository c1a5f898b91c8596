package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/talenthub/auth-service/internal/dtos"
	"github.com/talenthub/auth-service/internal/services"
	"github.com/talenthub/auth-service/internal/utils"
)

var registrationValidate = validator.New()

type RegistrationController struct {
	registrationService services.RegistrationService
}

func NewRegistrationController(registrationService services.RegistrationService) *RegistrationController {
	return &RegistrationController{registrationService: registrationService}
}

func (c *RegistrationController) RegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req dtos.CompanyRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := registrationValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid registration data", nil, err,
		)
		return
	}

	tokenSet, err := c.registrationService.RegisterCompany(r.Context(), req)
	if err != nil {
		c.respondRegistrationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tokenResponseFrom(tokenSet))
}

func (c *RegistrationController) RegisterApplicant(w http.ResponseWriter, r *http.Request) {
	var req dtos.ApplicantRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid payload", nil, err,
		)
		return
	}
	if err := registrationValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid registration data", nil, err,
		)
		return
	}

	tokenSet, err := c.registrationService.RegisterApplicant(r.Context(), req)
	if err != nil {
		c.respondRegistrationError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tokenResponseFrom(tokenSet))
}

func (c *RegistrationController) respondRegistrationError(w http.ResponseWriter, err error) {
	if errors.Is(err, utils.ErrEmailExists) {
		utils.RespondErrorWithCode(
			w, http.StatusConflict, utils.ErrCodeConflict, "Email already exists", nil,
		)
		return
	}
	utils.HandleAppError(w, err)
}
