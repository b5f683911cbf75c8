package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"

	"github.com/a-pavithraa/lambda-version/common"
)

// captureParams runs a command with the real flags and config loading and
// returns the parameters its action would use.
func captureParams(t *testing.T, args ...string) (*common.VersionParams, error) {
	t.Helper()
	flags := versionFlags()
	var captured *common.VersionParams
	app := &cli.App{
		Commands: []*cli.Command{{
			Name:   "capture",
			Before: altsrc.InitInputSourceWithContext(flags, configSource),
			Flags:  flags,
			Action: func(cCtx *cli.Context) error {
				params, err := SetVersionParams(cCtx)
				captured = params
				return err
			},
		}},
	}
	err := app.Run(append([]string{"lambda-version", "capture"}, args...))
	return captured, err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSetVersionParamsFromFlags(t *testing.T) {
	params, err := captureParams(t,
		"--function_name", "test-function",
		"--state", "absent",
		"--fv", "3",
		"--code_sha_256", "hash",
		"--revision_id", "rev",
		"-d", "release",
		"--check",
	)
	require.NoError(t, err)
	assert.Equal(t, "test-function", params.FunctionName)
	assert.Equal(t, common.Absent, params.State)
	assert.Equal(t, "3", params.FunctionVersion)
	assert.Equal(t, "hash", params.CodeSha256)
	assert.Equal(t, "rev", params.RevisionID)
	assert.Equal(t, "release", params.VersionDescription)
	assert.True(t, params.CheckMode)
	assert.False(t, params.RequireRole)
}

func TestSetVersionParamsDefaults(t *testing.T) {
	params, err := captureParams(t, "-n", "test-function")
	require.NoError(t, err)
	assert.Equal(t, common.Present, params.State)
	assert.Empty(t, params.FunctionVersion)
}

func TestSetVersionParamsInvalidState(t *testing.T) {
	_, err := captureParams(t, "-n", "test-function", "--state", "deleted")
	var inputErr *common.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestSetVersionParamsFromYamlConfig(t *testing.T) {
	path := writeFile(t, "version.yaml", "function_name: from-yaml\nversion_description: nightly\nrequire_role: true\n")

	params, err := captureParams(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", params.FunctionName)
	assert.Equal(t, "nightly", params.VersionDescription)
	assert.True(t, params.RequireRole)
}

func TestSetVersionParamsFlagOverridesConfig(t *testing.T) {
	path := writeFile(t, "version.toml", "function_name = \"from-toml\"\nstate = \"absent\"\nfunction_version = \"4\"\n")

	params, err := captureParams(t, "--config", path, "--function_version", "5")
	require.NoError(t, err)
	assert.Equal(t, "from-toml", params.FunctionName)
	assert.Equal(t, common.Absent, params.State)
	assert.Equal(t, "5", params.FunctionVersion)
}

func TestConfigSourceUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "version.ini", "function_name=x\n")

	_, err := captureParams(t, "--config", path)
	assert.ErrorContains(t, err, "unsupported config extension")
}

func TestDeleteVersionRequiresVersion(t *testing.T) {
	err := newApp().Run([]string{"lambda-version", "delete_version", "-n", "test-function"})
	var inputErr *common.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestRunRejectsUnknownOutputFormat(t *testing.T) {
	err := newApp().Run([]string{"lambda-version", "ensure", "-n", "test-function", "--output", "csv"})
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestRunRejectsMissingFunctionName(t *testing.T) {
	err := newApp().Run([]string{"lambda-version", "pv"})
	var inputErr *common.InputError
	assert.ErrorAs(t, err, &inputErr)
}
