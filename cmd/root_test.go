package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/navkit/internal/config"
	"github.com/oakwood-commons/navkit/pkg/nav"
	"github.com/oakwood-commons/navkit/pkg/settings"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: warehouse
  start_path: inventory
sections:
  - key: dashboard
    display_name: Dashboard
  - key: inventory
    display_name: Inventory
    icon: "📦"
    routes:
      - key: incoming
        display_name: Incoming
pins:
  - path: 'inventory?{"q":"foo"}'
    title: Stock
`), 0o644))
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRoutesCommand(t *testing.T) {
	path := writeTestConfig(t)
	out, err := executeCommand(t, "routes", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Inventory")
	assert.Contains(t, out, "(inventory)")
	assert.Contains(t, out, "  Incoming  (inventory/incoming)")
}

func TestResolveCommandDirectContext(t *testing.T) {
	path := writeTestConfig(t)
	out, err := executeCommand(t, "resolve", "inventory",
		"--config", path,
		"--current", `inventory?{"q":"foo","count":3}`)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "foo", got["q"])
	assert.Equal(t, float64(3), got["count"])
}

func TestResolveCommandDashboardContext(t *testing.T) {
	path := writeTestConfig(t)
	out, err := executeCommand(t, "resolve", "inventory",
		"--config", path,
		"--current", "dashboard")
	require.NoError(t, err)

	// The pinned container's stored parameters apply on the dashboard.
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "foo", got["q"])
}

func TestResolveCommandUnrelatedLocation(t *testing.T) {
	path := writeTestConfig(t)
	out, err := executeCommand(t, "resolve", "inventory",
		"--config", path,
		"--current", "schedule")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", out)
}

func TestConfigCommandPrintsMergedYAML(t *testing.T) {
	path := writeTestConfig(t)
	out, err := executeCommand(t, "config", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "name: warehouse")
	// Defaults survive the merge.
	assert.Contains(t, out, "dashboard_section: dashboard")
}

func TestRootFlagDefaults(t *testing.T) {
	cases := []struct {
		name string
		def  string
	}{
		{"start", ""},
		{"no-color", "false"},
		{"watch", "false"},
	}
	for _, tc := range cases {
		var f *pflag.Flag = rootCmd.Flags().Lookup(tc.name)
		require.NotNil(t, f, tc.name)
		assert.Equal(t, tc.def, f.DefValue, tc.name)
	}
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestPersistentPreRunStoresRunSettings(t *testing.T) {
	path := writeTestConfig(t)
	_, err := executeCommand(t, "routes", "--config", path)
	require.NoError(t, err)

	run, ok := settings.FromContext(rootCtx)
	require.True(t, ok, "run settings missing from the command context")
	assert.Equal(t, path, run.ConfigPath)
	assert.False(t, run.WatchConfig)
	assert.True(t, run.ExitOnError)
}

func TestRunParamsDefaultsWithoutContext(t *testing.T) {
	orig := rootCtx
	rootCtx = nil
	defer func() { rootCtx = orig }()

	run := runParams()
	require.NotNil(t, run)
	assert.Equal(t, "", run.ConfigPath)
	assert.True(t, run.ExitOnError)
}

func TestBuildEngineWiresCollaborators(t *testing.T) {
	cfg, err := config.Load(writeTestConfig(t))
	require.NoError(t, err)

	engine, err := buildEngine(cfg, logr.Discard())
	require.NoError(t, err)

	assert.NotNil(t, engine.Navigator.Registry().GetRoute("inventory/incoming"))
	assert.True(t, engine.Board.IsPinned("inventory"))
	assert.Equal(t, 1, engine.Stack.Len())
	assert.Equal(t, nav.ContextDashboard, engine.Navigator.ContextFor("dashboard"))
}

func TestBuildEngineRejectsBadGuardRule(t *testing.T) {
	cfg := config.File{
		App:   config.AppConfig{DashboardSection: "dashboard"},
		Guard: config.GuardConfig{Rule: "_.user =="},
	}
	_, err := buildEngine(cfg, logr.Discard())
	assert.Error(t, err)
}
