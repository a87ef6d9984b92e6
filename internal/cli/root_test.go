package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and stdin, returning stdout,
// stderr and the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// response is CLIResponse with Data left undecoded.
type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

func decodeResponse(t *testing.T, out string, data any) response {
	t.Helper()

	var resp response
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	if data != nil && resp.Data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "springs", cmd.Use)
	assert.Contains(t, cmd.Long, "damaged")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"solve", "count", "test", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestSolveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	solveCmd, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)

	for _, name := range []string{"unfold", "workers", "db", "per-record"} {
		assert.NotNil(t, solveCmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "1", solveCmd.Flags().Lookup("unfold").DefValue)
	assert.Equal(t, "w", solveCmd.Flags().Lookup("workers").Shorthand)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "count", "#", "1", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigFile_SuppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "springs.cue", "unfold: 5\nformat: \"json\"\n")

	out, _, err := execute(t, "", "--config", cfgPath, "count", "???.###", "1,1,3")
	require.NoError(t, err)

	var data CountOutput
	resp := decodeResponse(t, out, &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 5, data.Unfold)
	assert.Equal(t, uint64(1), data.Count)
}

func TestConfigFile_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "springs.cue", "unfold: 5\n")

	out, _, err := execute(t, "", "--config", cfgPath, "count", "?###????????", "3,2,1", "--unfold", "1")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestConfigFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "springs.cue", "unfold: 0\n")

	_, _, err := execute(t, "", "--config", cfgPath, "count", "#", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "???.### 1,1,3\n", "solve", "-v")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, errOut, "solve starting")
	assert.Contains(t, errOut, "level=DEBUG")
}

func TestQuietByDefault(t *testing.T) {
	_, errOut, err := execute(t, "???.### 1,1,3\n", "solve")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}
