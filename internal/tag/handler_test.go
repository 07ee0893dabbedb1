package tag

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"terminal-terrace/blog-api/packages/response"
)

// TestTagNonNumericID 非数字ID段返回 404 信封
func TestTagNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewTagHandler(nil)
	r.GET("/api/tag/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/tag/abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp response.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, response.NotFound, resp.Error.Code)
	assert.Equal(t, "接口不存在", resp.Error.Message)
}
