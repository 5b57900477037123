package mobile

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartStopServer(t *testing.T) {
	require.NoError(t, StartServer(t.TempDir(), "0"))
	defer func() { _ = StopServer() }()

	addr := Addr()
	require.NotEmpty(t, addr)
	assert.Error(t, StartServer(t.TempDir(), "0"), "second start must fail")

	resp, err := http.Post("http://"+addr+"/api/new_game", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, StopServer())
	assert.Empty(t, Addr())
	assert.NoError(t, StopServer())
}
