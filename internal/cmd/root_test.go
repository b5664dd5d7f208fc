package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryu-ryuk/omnidim-go/internal/config"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/testutil"
)

// isolate points every configuration source at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("OMNIDIM_CONFIG", filepath.Join(dir, "config.yaml"))
	for _, name := range []string{"OMNIDIM_API_KEY", "OMNIDIMENSION_API_KEY", "OMNIDIM_BASE_URL", "OMNIDIM_TIMEOUT", "OMNIDIM_OUTPUT", "LOG_LEVEL"} {
		unsetenv(t, name)
	}
	return dir
}

func unsetenv(t *testing.T, name string) {
	t.Helper()
	prev, ok := os.LookupEnv(name)
	require.NoError(t, os.Unsetenv(name))
	if ok {
		t.Cleanup(func() { _ = os.Setenv(name, prev) })
	}
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	resetFlags(cmd)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// resetFlags returns every flag in the tree to its default, since the
// command tree is shared between tests.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(resetFlag)
	c.PersistentFlags().VisitAll(resetFlag)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)

	for name, typ := range map[string]string{
		"api-key":  "string",
		"base-url": "string",
		"timeout":  "duration",
		"config":   "string",
		"output":   "string",
		"debug":    "bool",
		"no-color": "bool",
	} {
		f := cmd.PersistentFlags().Lookup(name)
		if assert.NotNil(t, f, "--%s should be registered", name) {
			assert.Equal(t, typ, f.Value.Type(), "--%s type", name)
		}
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range NewRootCommand().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"agents", "calls", "kb", "phone", "integrations", "simulations", "config", "mcp", "mcp-config"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestAgentsList(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.On("GET", "/agents", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertHeader(t, r, "Authorization", "Bearer "+testutil.TestAPIKey)
		testutil.AssertQuery(t, r, "pageno", "2")
		testutil.AssertQuery(t, r, "pagesize", "5")
		testutil.JSONResponse(t, w, testutil.FixtureAgents())
	})

	out, err := execute(t, "agents", "list", "--page", "2", "--page-size", "5",
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Front Desk")
	assert.Contains(t, out, "After Hours")
	assert.NotContains(t, out, "total_records")
}

func TestAgentsGetJSON(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.OnJSON("GET", "/agents/101", http.StatusOK, testutil.FixtureAgent())

	out, err := execute(t, "agents", "get", "101", "--output", "json",
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Front Desk", got["name"])
}

func TestFlagKeyBeatsEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OMNIDIM_API_KEY", "env_key_0123456789")
	mock := testutil.NewMockServer(t)
	mock.On("GET", "/knowledge_base/list", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertHeader(t, r, "Authorization", "Bearer flag_key_0123456789")
		testutil.JSONResponse(t, w, testutil.Success(testutil.FixtureKnowledgeBaseFiles()))
	})

	out, err := execute(t, "kb", "list", "--api-key", "flag_key_0123456789", "--base-url", mock.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "faq.pdf")
	assert.Equal(t, 1, mock.Hits())
}

func TestEnvironmentKeyIsUsed(t *testing.T) {
	isolate(t)
	t.Setenv("OMNIDIM_API_KEY", "env_key_0123456789")
	mock := testutil.NewMockServer(t)
	mock.On("GET", "/phone_number/list", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertHeader(t, r, "Authorization", "Bearer env_key_0123456789")
		testutil.JSONResponse(t, w, testutil.FixturePhoneNumbers())
	})

	out, err := execute(t, "phone", "list", "--base-url", mock.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "+15550000002")
}

func TestMissingKeyFailsBeforeRequest(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)

	_, err := execute(t, "agents", "list", "--base-url", mock.URL)
	require.Error(t, err)
	assert.True(t, sdkerrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "OMNIDIM_API_KEY")
	assert.Equal(t, 0, mock.Hits())
}

func TestInvalidIDArgument(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)

	_, err := execute(t, "agents", "get", "abc", "--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	var argErr *sdkerrors.ArgumentError
	require.True(t, stderrors.As(err, &argErr))
	assert.Equal(t, "agent_id", argErr.Param)
	assert.Equal(t, 0, mock.Hits())
}

func TestAPIErrorSurfaces(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.OnJSON("POST", "/calls/dispatch", http.StatusBadRequest, map[string]any{"error": "invalid number"})

	_, err := execute(t, "calls", "dispatch", "--agent-id", "5", "--to", "12345",
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.Error(t, err)
	assert.Equal(t, "API error (400): invalid number", err.Error())
}

func TestCallsDispatchSendsContext(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/calls/dispatch", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{
			"agent_id":     5,
			"to_number":    "+15551234567",
			"call_context": map[string]any{"purpose": "reminder"},
		})
		testutil.JSONResponse(t, w, map[string]any{"success": true, "requestId": "r-1"})
	})

	out, err := execute(t, "calls", "dispatch", "--agent-id", "5", "--to", "+15551234567",
		"--context", `{"purpose":"reminder"}`, "--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "r-1")
}

func TestAgentsCreateSections(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/agents/create", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{
			"name":              "Front Desk",
			"context_breakdown": []any{map[string]any{"title": "Role", "body": "Answer calls"}},
			"welcome_message":   "Hi!",
			"voice":             "alloy",
		})
		testutil.JSONResponse(t, w, testutil.FixtureAgent())
	})

	_, err := execute(t, "agents", "create", "--name", "Front Desk", "--section", "Role=Answer calls",
		"--welcome-message", "Hi!", "--extra", `{"voice":"alloy"}`,
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.NoError(t, err)

	_, err = execute(t, "agents", "create", "--name", "Front Desk", "--section", "no separator",
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	assert.Error(t, err)
	assert.Equal(t, 1, mock.Hits())
}

func TestKnowledgeBaseAttach(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.On("POST", "/knowledge_base/attach", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertJSONBody(t, r, map[string]any{"file_ids": []any{55, 56}, "agent_id": 101, "when_to_use": "pricing"})
		testutil.JSONResponse(t, w, map[string]any{"success": true})
	})

	_, err := execute(t, "kb", "attach", "--file-ids", "55,56", "--agent-id", "101", "--when", "pricing",
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.NoError(t, err)
}

func TestSimulationStart(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	mock.OnJSON("POST", "/simulations/12/start", http.StatusOK, testutil.Success(map[string]any{"id": 12, "status": "running"}))

	out, err := execute(t, "simulations", "start", "12", "--output", "yaml",
		"--api-key", testutil.TestAPIKey, "--base-url", mock.URL)
	require.NoError(t, err)
	assert.Equal(t, "id: 12\nstatus: running\n", out)
}

func TestConfigSetKeyAndShow(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")

	out, err := execute(t, "config", "set-key", "file_key_0123456789")
	require.NoError(t, err)
	assert.Contains(t, out, "***6789")
	assert.NotContains(t, out, "file_key_0123456789")

	_, err = execute(t, "config", "set-url", "https://staging.example.com/api/v1")
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "file_key_0123456789", cfg.APIKey)
	assert.Equal(t, "https://staging.example.com/api/v1", cfg.BaseURL)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err = execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "***6789")
	assert.Contains(t, out, config.SourceFile)
	assert.Contains(t, out, "https://staging.example.com/api/v1")
	assert.NotContains(t, out, "file_key_0123456789")
}

func TestMCPConfig(t *testing.T) {
	isolate(t)

	out, err := execute(t, "mcp-config", "--command", "/usr/local/bin/omnidim", "--api-key", "abc_0123456789")
	require.NoError(t, err)

	var got struct {
		MCPServers map[string]hostEntry `json:"mcpServers"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	entry := got.MCPServers["omnidim"]
	assert.Equal(t, "/usr/local/bin/omnidim", entry.Command)
	assert.Equal(t, []string{"mcp"}, entry.Args)
	assert.Equal(t, "abc_0123456789", entry.Env["OMNIDIM_API_KEY"])
}

func TestServeMCPWithoutKey(t *testing.T) {
	isolate(t)
	var out bytes.Buffer

	err := ServeMCP(context.Background(), config.Overrides{}, strings.NewReader(""), &out)
	require.Error(t, err)
	assert.True(t, sdkerrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "OMNIDIM_API_KEY")
	assert.Empty(t, out.String())
}

func TestServeMCPListsTools(t *testing.T) {
	isolate(t)
	mock := testutil.NewMockServer(t)
	var out bytes.Buffer
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	}, "\n") + "\n")

	err := ServeMCP(context.Background(), config.Overrides{APIKey: testutil.TestAPIKey, BaseURL: mock.URL}, in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"name":"call_dispatch"`)
	assert.Contains(t, out.String(), `"name":"dispatch_a_call"`)
	assert.Equal(t, 0, mock.Hits())
}

// mcpSession is an initialize handshake followed by one tools/call.
func mcpSession(tool string) io.Reader {
	return strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"` + tool + `","arguments":{}}}`,
	}, "\n") + "\n")
}

// captureStderr redirects os.Stderr until the returned func is called, which
// yields everything written meanwhile.
func captureStderr(t *testing.T) func() string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	prev := os.Stderr
	os.Stderr = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	return func() string {
		os.Stderr = prev
		_ = w.Close()
		<-done
		_ = r.Close()
		return buf.String()
	}
}

func TestMCPCommandFlagKeyBeatsEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OMNIDIM_API_KEY", "env_key_0123456789")
	mock := testutil.NewMockServer(t)
	mock.On("GET", "/agents", func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertHeader(t, r, "Authorization", "Bearer flag_key_0123456789")
		testutil.JSONResponse(t, w, testutil.FixtureAgents())
	})

	cmd := NewMCPCommand("omnidim-mcp-server")
	var out bytes.Buffer
	cmd.SetIn(mcpSession("agent_list"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--api-key", "flag_key_0123456789", "--base-url", mock.URL})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, 1, mock.Hits())
	assert.Contains(t, out.String(), `"id":2`)
	assert.NotContains(t, out.String(), `"isError":true`)
}

func TestMCPCommandDebugLeavesEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("GO_ENV", "")
	mock := testutil.NewMockServer(t)
	mock.OnJSON("GET", "/knowledge_base/list", http.StatusOK, testutil.Success(testutil.FixtureKnowledgeBaseFiles()))

	cmd := NewMCPCommand("omnidim-mcp")
	var out bytes.Buffer
	cmd.SetIn(mcpSession("knowledge_base_list"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--api-key", testutil.TestAPIKey, "--base-url", mock.URL, "--debug"})

	stderr := captureStderr(t)
	err := cmd.Execute()
	logs := stderr()

	require.NoError(t, err)
	_, set := os.LookupEnv("LOG_LEVEL")
	assert.False(t, set, "--debug must not touch the process environment")
	assert.Contains(t, logs, "level=DEBUG")
	assert.Contains(t, logs, "tool=knowledge_base_list")
	assert.Contains(t, out.String(), "faq.pdf")
}

func TestNewMCPCommand(t *testing.T) {
	cmd := NewMCPCommand("omnidim-mcp-server")
	assert.Equal(t, "omnidim-mcp-server", cmd.Name())
	for _, name := range []string{"api-key", "base-url", "timeout", "config", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
