package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplereplay/replay/api/types"
	"github.com/simplereplay/replay/internal/database"
)

func TestGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupDeps      func(t *testing.T) *types.Dependencies
		expectedStatus int
		expectedHealth string
		expectedDB     string
		connected      bool
	}{
		{
			name: "healthy with database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				t.Cleanup(func() { _ = db.Close() })
				return &types.Dependencies{DB: db, Build: types.BuildInfo{Version: "1.2.3"}}
			},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedDB:     "connected",
			connected:      true,
		},
		{
			name: "healthy without database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				return &types.Dependencies{Build: types.BuildInfo{Version: "1.2.3"}}
			},
			expectedStatus: http.StatusOK,
			expectedHealth: "healthy",
			expectedDB:     "not configured",
		},
		{
			name: "unhealthy with closed database",
			setupDeps: func(t *testing.T) *types.Dependencies {
				db, err := database.Initialize(":memory:", false)
				require.NoError(t, err)
				require.NoError(t, db.Close())
				return &types.Dependencies{DB: db, Build: types.BuildInfo{Version: "1.2.3"}}
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedHealth: "unhealthy",
			expectedDB:     "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Get(tt.setupDeps(t))(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response struct {
				Status   string `json:"status"`
				Version  string `json:"version"`
				Services struct {
					Database struct {
						Status    string `json:"status"`
						Connected bool   `json:"connected"`
					} `json:"database"`
				} `json:"services"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedHealth, response.Status)
			assert.Equal(t, "1.2.3", response.Version)
			assert.Equal(t, tt.expectedDB, response.Services.Database.Status)
			assert.Equal(t, tt.connected, response.Services.Database.Connected)
		})
	}
}
