package main

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommand_ListenFailure(t *testing.T) {
	t.Setenv("FACTS_RUNTIME_PATH", t.TempDir())

	// hold the port so the server cannot bind it
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	rootCmd.SetArgs([]string{"serve", "--addr", ln.Addr().String()})
	defer func() { serveAddr = "" }()

	err = rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "start services")
	assert.ErrorContains(t, err, "*web.Server")
}
