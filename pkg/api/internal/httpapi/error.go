package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the warden error taxonomy onto transport status codes.
// Anything unrecognized is an internal error; the decision path never gets
// here for deny.
func respondError(w http.ResponseWriter, logger logx.Logger, err error) {
	var status int

	switch err.(type) {
	case warden.ErrNotFound:
		status = http.StatusNotFound
	case warden.ErrAlreadyExists:
		status = http.StatusConflict
	default:
		switch err {
		case warden.ErrInvalidAction:
			status = http.StatusUnprocessableEntity
		case warden.ErrProvisioningConflict:
			status = http.StatusConflict
		case warden.ErrUnauthenticated:
			status = http.StatusUnauthorized
		default:
			status = http.StatusInternalServerError
		}
	}

	respondJSON(w, logger, status, errorResponse{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, logger logx.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(failedToWriteResponse, err)
	}
}

func decodeJSON(r *http.Request, logger logx.Logger, into interface{}) error {
	err := json.NewDecoder(r.Body).Decode(into)
	if err != nil {
		logger.Error(failedToDecodeRequest, err)
	}
	return err
}
