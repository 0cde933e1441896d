package http

import (
	"net/http"

	"github.com/rs/zerolog"
)

type ServerResponse interface {
	Render(writer http.ResponseWriter) error
}

// ServerErrorResponse renders the message of Cause as plain text. The stack
// trace of Cause is logged, never sent to the client.
type ServerErrorResponse struct {
	Status int
	Cause  error
}

func (e ServerErrorResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Set("Content-Type", "text/plain; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(e.Status)
	_, err := writer.Write([]byte(e.Cause.Error()))
	return err
}

func (e ServerErrorResponse) Error() string {
	return e.Cause.Error()
}

func (e ServerErrorResponse) MarshalZerologObject(event *zerolog.Event) {
	event.AnErr("cause", e.Cause).Int("status", e.Status)
}
