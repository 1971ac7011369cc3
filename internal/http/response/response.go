package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"ats/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error writes a coded error as JSON. Unclassified errors become an opaque
// 500 with full detail logged server-side only; cause chains and internal
// identifiers never reach the client.
func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) || coded.Code == common.CodeInternal || coded.Code == common.CodeStorage {
		log.Error().Err(err).Msg("request failed")
		if collector != nil {
			collector.IncErrors()
		}
		status := http.StatusInternalServerError
		JSON(w, status, errorBody{Status: status, Message: "an unexpected error occurred"})
		return
	}
	status := statusFor(coded.Code)
	JSON(w, status, errorBody{Status: status, Message: coded.Message, Errors: coded.Fields})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeForbidden, common.CodeNotAvailable:
		return http.StatusForbidden
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeAccountLocked, common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
