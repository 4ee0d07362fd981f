package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplereplay/replay/api/types"
	apperrors "github.com/simplereplay/replay/pkg/errors"
	"github.com/simplereplay/replay/pkg/logging"

	"github.com/simplereplay/replay/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, Timeout: 2 * time.Second, Logger: logging.Discard()})
}

func writeProject(w http.ResponseWriter, status int, doc *models.Document) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ProjectResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK},
		Project:      doc,
	})
}

func writeError(w http.ResponseWriter, status int, code apperrors.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Status: types.StatusError, Message: msg, Error: string(code)})
}

func TestClient_Create(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/projects", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var doc models.Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		assert.Equal(t, "Final", doc.Title)
		assert.NotNil(t, doc.Clips, "empty collections must be sent as []")

		doc.ID = "doc-1"
		writeProject(w, http.StatusCreated, &doc)
	}))

	got, err := client.Create(context.Background(), &models.Document{Title: "Final", Clips: []models.Clip{}})
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)
}

func TestClient_MergeAndFetch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/projects/doc-1", r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			var doc models.Document
			require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
			doc.ID = "doc-1"
			writeProject(w, http.StatusOK, &doc)
		case http.MethodGet:
			writeProject(w, http.StatusOK, &models.Document{ID: "doc-1", Title: "Stored"})
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))

	merged, err := client.Merge(context.Background(), "doc-1", &models.Document{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", merged.Title)

	fetched, err := client.Fetch(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Stored", fetched.Title)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode apperrors.ErrorCode
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusNotFound, apperrors.ErrCodeNotFound, "project not found")
			},
			wantCode: apperrors.ErrCodeNotFound,
		},
		{
			name: "validation error keeps its code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeError(w, http.StatusBadRequest, apperrors.ErrCodeValidation, "bad flag")
			},
			wantCode: apperrors.ErrCodeValidation,
		},
		{
			name: "server error is external",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantCode: apperrors.ErrCodeExternalService,
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantCode: apperrors.ErrCodeExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Fetch(context.Background(), "doc-1")
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.GetCode(err))
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, "doc-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeAPITimeout))
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url, Timeout: time.Second, Logger: logging.Discard()})
	_, err := client.Fetch(context.Background(), "doc-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeExternalService))
}

func TestHTTPError_IsRetryable(t *testing.T) {
	assert.True(t, (&HTTPError{StatusCode: 503}).IsRetryable())
	assert.True(t, (&HTTPError{StatusCode: 429}).IsRetryable())
	assert.False(t, (&HTTPError{StatusCode: 400}).IsRetryable())
	assert.False(t, (&HTTPError{StatusCode: 404}).IsRetryable())
}

func TestClient_Watch(t *testing.T) {
	upgrader := websocket.Upgrader{}
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/projects/missing/watch" {
			writeError(w, http.StatusNotFound, apperrors.ErrCodeNotFound, "project not found")
			return
		}
		assert.Equal(t, "/api/v1/projects/doc-1/watch", r.URL.Path)

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for i := 0; i < 2; i++ {
			_ = conn.WriteJSON(models.ChangeNotice{ID: "doc-1", UpdatedAt: updated.Add(time.Duration(i) * time.Second)})
		}
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	}))

	var notices []models.ChangeNotice
	err := client.Watch(context.Background(), "doc-1", func(n models.ChangeNotice) {
		notices = append(notices, n)
	})
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.True(t, notices[1].UpdatedAt.After(notices[0].UpdatedAt))

	err = client.Watch(context.Background(), "missing", func(models.ChangeNotice) {})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestClient_WatchURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://docs.example.com/base/"})
	got, err := c.watchURL("doc 1")
	require.NoError(t, err)
	assert.Equal(t, "wss://docs.example.com/base/api/v1/projects/doc%201/watch", got)

	c = NewClient(Config{BaseURL: "ftp://x"})
	_, err = c.watchURL("doc")
	assert.Error(t, err)
}
