package response

import (
	"encoding/json"
	"net/http"
	"safar/shared/constant"
	"safar/shared/failure"
	"safar/shared/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform response body. Data and Errors are mutually
// exclusive in practice; Message accompanies either.
type Envelope struct {
	Status  string                   `json:"status"`
	Message string                   `json:"message,omitempty"`
	Data    any                      `json:"data,omitempty"`
	Errors  []failure.FieldViolation `json:"errors,omitempty"`
}

// WithMessage sends a success response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Status: StatusSuccess, Message: message})
}

// WithJSON sends a success response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Envelope{Status: StatusSuccess, Data: jsonPayload})
}

// WithError sends an error response; field violations carried by the error
// are surfaced so clients can fix every problem in one round trip.
// Internal errors carry store and driver details; those stay in the server
// log and the client gets a generic message.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		response(writer, code, Envelope{Status: StatusError, Message: constant.ResponseErrorInternal})

		return
	}

	response(writer, code, Envelope{
		Status:  StatusError,
		Message: err.Error(),
		Errors:  failure.GetFields(err),
	})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Envelope{Status: StatusError, Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{Status: StatusError, Message: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Envelope{Status: StatusError, Message: constant.ResponseErrorUnhealthy})
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
