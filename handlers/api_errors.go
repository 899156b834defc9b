package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// All handlers report failures with the same JSON envelope so the
// storefront and admin UI can surface them uniformly:
//
//	{"errors": [{"code": "not_found", "status": "404", "detail": "..."}]}
//
// Code is a stable machine-readable key (snake_case); Detail is the
// human-readable explanation and may change between releases.

// APIErrorDetail is a single error in the envelope.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse is the error envelope body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes the error envelope with a single error entry.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeInvalidPayload is the shared response for request bodies that
// fail to decode.
func writeInvalidPayload(w http.ResponseWriter) {
	WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
}
