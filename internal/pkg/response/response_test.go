package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	var resp Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.GET("/test", handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		Success(c, gin.H{"key": "value"})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "value", data["key"])
}

func TestSuccess_NilData(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		Success(c, nil)
	})

	resp := parseResponse(t, w)
	assert.Equal(t, CodeSuccess, resp.Code)
	assert.Nil(t, resp.Data)
}

func TestSuccessWithMessage(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		SuccessWithMessage(c, "User created successfully", gin.H{"user_id": 1})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Equal(t, "User created successfully", resp.Message)
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name        string
		call        func(c *gin.Context, message string)
		wantCode    int
		wantStatus  int
		wantDefault string
	}{
		{"param", ParamError, CodeParamError, http.StatusBadRequest, "invalid request"},
		{"not found", NotFoundError, CodeResourceNotFound, http.StatusNotFound, "resource not found"},
		{"quota", QuotaError, CodeQuotaExceeded, http.StatusForbidden, codeMessages[CodeQuotaExceeded]},
		{"duplicate", DuplicateError, CodeDuplicateAction, http.StatusBadRequest, "already exists"},
		{"server", ServerError, CodeServerError, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, func(c *gin.Context) { tt.call(c, "") })
			assert.Equal(t, tt.wantStatus, w.Code)

			resp := parseResponse(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantDefault, resp.Message)
			assert.Nil(t, resp.Data)

			w = serve(t, func(c *gin.Context) { tt.call(c, "custom") })
			assert.Equal(t, "custom", parseResponse(t, w).Message)
		})
	}
}

func TestHTTPStatus_UnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(4242))
	assert.Equal(t, http.StatusOK, HTTPStatus(CodeSuccess))
}
