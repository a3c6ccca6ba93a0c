package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// Response es el sobre {data, error, meta} de todas las respuestas JSON.
type Response struct {
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
	Meta  *Meta      `json:"meta,omitempty"`
}

// Meta viaja en cada respuesta para poder cruzarla con los logs.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	TimeUTC   string `json:"time_utc,omitempty"`
}

// ErrorBody lleva un código estable para clientes y un mensaje legible.
// Nunca incluye SQL ni detalles de la base.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

const fallbackBody = `{"error":{"code":"internal","message":"internal server error"}}`

// JSON serializa resp con el status dado.
func JSON(writer http.ResponseWriter, status int, resp Response) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)

	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(true)
	if err := encoder.Encode(resp); err != nil {
		http.Error(writer, fallbackBody, http.StatusInternalServerError)
	}
}

// OK responde data dentro del sobre.
func OK(writer http.ResponseWriter, request *http.Request, status int, data any) {
	JSON(writer, status, Response{Data: data, Meta: metaFor(request)})
}

// Fail responde un error estructurado.
func Fail(writer http.ResponseWriter, request *http.Request, status int, code, message string) {
	JSON(writer, status, Response{
		Error: &ErrorBody{Code: code, Message: message},
		Meta:  metaFor(request),
	})
}

func metaFor(request *http.Request) *Meta {
	return &Meta{
		RequestID: RequestIDFrom(request),
		TimeUTC:   time.Now().UTC().Format(time.RFC3339),
	}
}
