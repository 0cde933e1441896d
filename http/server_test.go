package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhminhmr/go-errtrace/exception"
	server "github.com/thanhminhmr/go-errtrace/http"
	"github.com/thanhminhmr/go-errtrace/log"
	"github.com/thanhminhmr/go-errtrace/stacktrace"
)

const errLedger = exception.String("ledger unavailable")

func newHandler(t *testing.T, output *bytes.Buffer, handler http.HandlerFunc) http.Handler {
	t.Helper()
	renderer, err := log.NewRenderer(&stacktrace.Config{
		MaxDepthPerThrowable: stacktrace.Unlimited,
		MaxLength:            stacktrace.Unlimited,
		OmitCommonFrames:     true,
		IncludeStackHash:     true,
	}, nil)
	require.NoError(t, err)
	logger := zerolog.New(output)
	return server.Recoverer(&logger, renderer)(handler)
}

func records(t *testing.T, output *bytes.Buffer) []map[string]any {
	t.Helper()
	var result []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(output.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		result = append(result, record)
	}
	return result
}

func TestRecovererLogsPanic(t *testing.T) {
	var output bytes.Buffer
	handler := newHandler(t, &output, func(http.ResponseWriter, *http.Request) {
		exception.Panic(errLedger.SetMessage("shard %d", 3))
	})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/charge", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Internal Server Error", recorder.Body.String())

	logged := records(t, &output)
	require.Len(t, logged, 3)
	assert.Equal(t, "Request", logged[0]["message"])
	assert.Equal(t, "Recovered from panic", logged[1]["message"])
	assert.Equal(t, "error", logged[1]["level"])
	assert.Equal(t, "ledger unavailable: shard 3", logged[1]["error"])
	assert.Regexp(t, `^[0-9a-f]{8}$`, logged[1]["stack_hash"])
	assert.Contains(t, logged[1]["stack_trace"], "ledger unavailable: shard 3\n\tat github.com/thanhminhmr/go-errtrace/http_test.TestRecovererLogsPanic.func1(server_test.go:")
	assert.Equal(t, "Response", logged[2]["message"])
	assert.EqualValues(t, http.StatusInternalServerError, logged[2]["status"])
	assert.Equal(t, logged[0]["request_id"], logged[2]["request_id"])
}

func TestRecovererWrapsPanicValues(t *testing.T) {
	var output bytes.Buffer
	handler := newHandler(t, &output, func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	logged := records(t, &output)
	require.Len(t, logged, 3)
	assert.Equal(t, "panic: boom", logged[1]["error"])
	assert.Contains(t, logged[1]["stack_trace"], "panic: boom\n\tat ")
}

func TestRecovererPassesThrough(t *testing.T) {
	var output bytes.Buffer
	handler := newHandler(t, &output, func(writer http.ResponseWriter, request *http.Request) {
		zerolog.Ctx(request.Context()).Info().Msg("Handling")
		writer.WriteHeader(http.StatusNoContent)
	})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/invoice/1", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	logged := records(t, &output)
	require.Len(t, logged, 3)
	assert.Equal(t, "Handling", logged[1]["message"])
	assert.Equal(t, logged[0]["request_id"], logged[1]["request_id"])
}

func TestRecovererAbortHandler(t *testing.T) {
	var output bytes.Buffer
	handler := newHandler(t, &output, func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	})
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestServerErrorResponse(t *testing.T) {
	recorder := httptest.NewRecorder()
	response := server.ServerErrorResponse{Status: http.StatusBadGateway, Cause: errLedger}
	require.NoError(t, response.Render(recorder))
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Equal(t, "text/plain; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "ledger unavailable", recorder.Body.String())
	assert.Equal(t, "ledger unavailable", response.Error())
}
