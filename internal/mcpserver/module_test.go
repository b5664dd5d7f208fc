package mcpserver

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/testutil"
)

func TestModuleShutsDownAtEOF(t *testing.T) {
	mock := testutil.NewMockServer(t)
	mock.OnJSON("GET", "/integrations", http.StatusOK, testutil.Success(testutil.FixtureIntegrations()))

	var out bytes.Buffer
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"integration_list","arguments":{}}}`,
	}, "\n") + "\n")

	app := fxtest.New(t,
		fx.Supply(mock.NewClient(t), discard(), Stdio{In: in, Out: &out}),
		Module,
	)
	app.RequireStart()

	select {
	case sig := <-app.Wait():
		assert.Equal(t, 0, sig.ExitCode)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not shut down when input closed")
	}
	app.RequireStop()

	assert.Contains(t, out.String(), `"id":2`)
	assert.Contains(t, out.String(), "custom_api")
}
