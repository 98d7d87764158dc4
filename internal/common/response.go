package common

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error payload returned by the admin listener.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes v to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders err in the canonical error shape. AppErrors keep their
// code and message; anything else is reported under fallbackCode.
func JSONError(w http.ResponseWriter, status int, fallbackCode string, err error) {
	body := ErrorBody{Code: fallbackCode, Message: http.StatusText(status)}
	if code := AppErrorCode(err); code != "" {
		body.Code = code
		body.Message = UserMessage(err, body.Message)
	}
	JSON(w, status, map[string]any{"error": body})
}
