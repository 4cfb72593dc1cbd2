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

func TestSuccessAndError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	ok := Success(c, 0, gin.H{"id": "1"}, "created", nil)
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.True(t, ok.Success)
	assert.Equal(t, "rid-1", ok.RequestID)

	bad := Error[any](c, 0, "invalid payload", map[string]string{"email": "is required"})
	assert.Equal(t, http.StatusBadRequest, bad.Status)
	assert.False(t, bad.Success)
}

func TestJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, Success(c, http.StatusCreated, gin.H{"id": "1"}, "created", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, true, body["success"])
}
