package cmd

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/simplereplay/replay/api"
	"github.com/simplereplay/replay/api/types"
	"github.com/simplereplay/replay/internal/database"
	"github.com/simplereplay/replay/pkg/config"
	"github.com/simplereplay/replay/pkg/logging"
)

// execute runs the command tree with a settings file that does not exist,
// so only defaults and REPLAY_* variables apply
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(new(bytes.Buffer))
	cmd.SetArgs(append(args, "--config="+filepath.Join(t.TempDir(), "absent.yaml"), "--log-level=error"))

	err := cmd.Execute()
	return buf.String(), err
}

// isolate points every path and URL of the configuration at the test
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Setenv("REPLAY_DATABASE_PATH", filepath.Join(dir, "documents.db"))
	t.Setenv("REPLAY_MEMBERSHIP_PATH", filepath.Join(dir, "local.db"))
	t.Setenv("REPLAY_SHARE_BASE_URL", "https://replay.example/")
	return dir
}

// startDocumentService runs the real HTTP service against a temp database
// and points the sync client at it
func startDocumentService(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(database.SchemaDocuments))

	srv := api.NewServer("", config.ServerConfig{})
	srv.SetDependencies(&types.Dependencies{DB: db, Logger: logging.Discard()})
	require.NoError(t, srv.Initialize())

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	t.Setenv("REPLAY_SYNC_BASE_URL", ts.URL)
	return ts.URL
}
