package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"diaconisas/internal/adapters/storage"
	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/application/orchestrators"
	"diaconisas/internal/domain/account"
	"diaconisas/internal/domain/attendance"
	"diaconisas/internal/domain/friend"
	"diaconisas/internal/domain/member"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/domain/person"
)

// errBadBody marks a request body that is not the expected JSON document.
var errBadBody = errors.New("invalid request body")

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_response_failed", "error", err)
	}
}

// writeError writes a {"detail": msg} body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, wire.Error{Detail: msg})
}

// internalError logs the error and responds with a generic 500.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeValid decodes the body into v and validates its tags.
func decodeValid(r *http.Request, v any) error {
	if err := strictDecode(r, v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return validate.Struct(v)
}

// fail maps an error to its HTTP status and writes it.
func fail(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Translate(translator)
		}
		writeJSON(w, http.StatusUnprocessableEntity, wire.Error{Detail: "validation failed", Fields: fields})
	case errors.Is(err, errBadBody):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, period.ErrInvalidDate),
		errors.Is(err, period.ErrMissingDate),
		errors.Is(err, period.ErrStartAfterEnd),
		errors.Is(err, person.ErrUnknownKind),
		errors.Is(err, orchestrators.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orchestrators.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, orchestrators.ErrAccountLocked):
		writeError(w, http.StatusLocked, err.Error())
	case errors.Is(err, orchestrators.ErrRegistrationClosed):
		writeError(w, http.StatusForbidden, err.Error())
	case isDomainValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		internalError(w, err)
	}
}

var domainValidationErrors = []error{
	member.ErrEmptyNombre,
	member.ErrEmptyApellido,
	friend.ErrEmptyNombre,
	attendance.ErrEmptyPersonID,
	attendance.ErrEmptyName,
	attendance.ErrInvalidKind,
	account.ErrEmptyUsername,
	account.ErrUsernameTooLong,
	account.ErrEmptyPassword,
	account.ErrPasswordTooShort,
	orchestrators.ErrNoRecipients,
}

func isDomainValidation(err error) bool {
	for _, target := range domainValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
