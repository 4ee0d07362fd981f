package cmd

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServeCommand(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		isolate(t)
		out, err := execute(t, "serve", "--help")
		require.NoError(t, err)
		assert.Contains(t, out, "Start the replay document service")
	})

	t.Run("invalid port", func(t *testing.T) {
		isolate(t)
		_, err := execute(t, "serve", "--port", "invalid")
		assert.Error(t, err)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		isolate(t)

		cmd := NewRootCmd()
		cmd.SetOut(new(strings.Builder))
		cmd.SetErr(new(strings.Builder))
		cmd.SetArgs([]string{"serve", "--host", "127.0.0.1", "--port", strconv.Itoa(freePort(t)),
			"--config", "absent.yaml", "--log-level", "error"})

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		done := make(chan error, 1)
		go func() { done <- cmd.ExecuteContext(ctx) }()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not stop")
		}
	})
}

func TestServeCommandFlags(t *testing.T) {
	serveCmd, _, err := NewRootCmd().Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serveCmd.Flags().Lookup("port"))
	assert.NotNil(t, serveCmd.Flags().Lookup("host"))
}
