package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "-1", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: value}}

		_, ok := parseIDParam(c, "id")

		assert.False(t, ok, value)
		assert.Equal(t, http.StatusBadRequest, w.Code, value)
	}
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "albumId", Value: id.String()}}
	parsed, ok := parseUUIDParam(c, "albumId")
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "albumId", Value: "not-a-uuid"}}
	_, ok = parseUUIDParam(c, "albumId")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBindUUIDList(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(fmt.Sprintf(`[%q,%q]`, a, b)))
	c.Request.Header.Set("Content-Type", "application/json")

	ids, ok := bindUUIDList(c)
	require.True(t, ok)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`["nope"]`))
	c.Request.Header.Set("Content-Type", "application/json")

	_, ok = bindUUIDList(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadSearchText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "raw text", body: "Green Day", want: "Green Day"},
		{name: "json string", body: `"Green Day"`, want: "Green Day"},
		{name: "empty", body: "", want: ""},
		{name: "unterminated quote is raw", body: `"Green`, want: `"Green`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			text, err := readSearchText(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "unknown user", err: fmt.Errorf("get: %w", entities.ErrUserNotFound), wantCode: http.StatusNotFound, wantMsg: "user not found"},
		{name: "duplicate email", err: entities.ErrDuplicateEmail, wantCode: http.StatusConflict, wantMsg: ConflictMessage},
		{
			name:     "validation",
			err:      &entities.ValidationError{Fields: map[string]string{"email": "Email is not valid"}},
			wantCode: http.StatusBadRequest,
			wantMsg:  "validation failed",
		},
		{name: "anything else", err: errors.New("disk on fire"), wantCode: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			respondServiceError(c, tt.err, "test")

			assert.Equal(t, tt.wantCode, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.NotContains(t, w.Body.String(), "disk on fire")
		})
	}
}
