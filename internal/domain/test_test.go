package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestDefinition_PreservesExtraFields(t *testing.T) {
	input := `{"name":"Login","startUrl":"http://old","steps":[{"command":"click","target":"#go"}],"viewportSize":{"width":1024},"region":"us-east-1"}`

	var def TestDefinition
	require.NoError(t, json.Unmarshal([]byte(input), &def))

	assert.Equal(t, "Login", def.Name)
	assert.Equal(t, "http://old", def.StartURL)
	assert.Len(t, def.Extra, 3)

	def.StartURL = "https://abc.ngrok.app"
	out, err := json.Marshal(def)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "Login", got["name"])
	assert.Equal(t, "https://abc.ngrok.app", got["startUrl"])
	assert.Equal(t, "us-east-1", got["region"])
	assert.Equal(t, map[string]any{"width": float64(1024)}, got["viewportSize"])
	assert.Len(t, got["steps"], 1)
}

func TestTestDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing name", input: `{"startUrl":"x"}`},
		{name: "name not a string", input: `{"name":42}`},
		{name: "array", input: `[{"name":"x"}]`},
		{name: "null", input: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var def TestDefinition
			assert.Error(t, json.Unmarshal([]byte(tt.input), &def))
		})
	}
}

func TestRunOutcome_Success(t *testing.T) {
	var o RunOutcome
	assert.True(t, o.Success(), "empty outcome is a success")

	o.Add(TestRecord{Name: "Login", Passing: true})
	assert.True(t, o.Success())

	o.Add(TestRecord{Name: "Logout", Passing: false})
	assert.False(t, o.Success())
	assert.Equal(t, 1, o.Passed())
	assert.Equal(t, 1, o.Failed())
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	var tunnelErr *TunnelError
	err := error(&TunnelError{Op: "open", Err: cause})
	require.ErrorAs(t, err, &tunnelErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "tunnel open failed: boom", err.Error())

	hookErr := &HookError{Stage: "setup", Script: "./setup.sh", ExitCode: 3, Output: "no db\n", Err: cause}
	assert.Equal(t, `setup script "./setup.sh" failed with exit code 3: no db`, hookErr.Error())

	execErr := &ExecutionError{Test: "Login", StatusCode: 500, Err: cause}
	assert.Equal(t, `executing test "Login" failed (HTTP 500): boom`, execErr.Error())
}
