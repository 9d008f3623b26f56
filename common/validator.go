package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes a request body into payload and checks its
// validation tags (signup/signin credentials, phone number and agent
// payloads). On failure it writes the InvalidInput response itself and
// returns false so the handler can bail out without wrapping the error
// again.
func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		NewInvalidInputError("Invalid request body", err).Send(w)
		return false
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		NewInvalidInputError(validationErrors.Error(), nil).Send(w)
		return false
	}

	return true
}
