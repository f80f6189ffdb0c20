package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLoop = errors.New("loop")

func handle(t *testing.T, h *Handler, err error) (int, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	h.Handle(err, c)

	var body map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body["error"]
}

func TestHandle(t *testing.T) {
	t.Parallel()

	h := NewHandler(func(err error) error {
		if errors.Is(err, errLoop) {
			return Unprocessable("category_cycle", "Category chain loops.")
		}
		return nil
	})

	tests := []struct {
		name string
		err  error
		code int
		slug string
	}{
		{"custom error", NotFound("Book"), http.StatusNotFound, "not_found"},
		{"wrapped custom error", errors.Wrap(NotFound("Book"), "retrieve"), http.StatusNotFound, "not_found"},
		{"translated error", errors.Wrap(errLoop, "resolve"), http.StatusUnprocessableEntity, "category_cycle"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "method_not_allowed"},
		{"anything else", errors.New("boom"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, payload := handle(t, h, tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.slug, payload["code"])
			assert.EqualValues(t, tt.code, payload["status_code"])
		})
	}
}

func TestError_Is(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(NotFound("Book"), NotFound("Book")))
	assert.False(t, errors.Is(NotFound("Book"), NotFound("Category")))
}
