package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManagerPriorityOrder tests that the first source yielding a value
// wins.
func TestManagerPriorityOrder(t *testing.T) {
	m, err := NewManager([]string{"pypi", "setup_py"}, nil)
	require.NoError(t, err)

	m.Register("pypi", FromPyPI(map[Option]interface{}{}))
	m.Register("setup_py", FromSetupScript(map[Option]interface{}{OptOverlay: "bar"}))

	v, err := m.Get(OptOverlay)
	require.NoError(t, err)
	assert.Equal(t, "bar", v)

	m2, err := NewManager([]string{"setup_py", "pypi"}, nil)
	require.NoError(t, err)
	m2.Register("setup_py", FromSetupScript(map[Option]interface{}{OptOverlay: "first"}))
	m2.Register("pypi", FromPyPI(map[Option]interface{}{OptOverlay: "second"}))

	v, err = m2.Get(OptOverlay)
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

// TestManagerSchemaDefault tests the fallback when no source has a value
// and the option is not interactive.
func TestManagerSchemaDefault(t *testing.T) {
	m, err := NewManager([]string{"pypi", "setup_py"}, nil)
	require.NoError(t, err)
	m.Register("pypi", FromPyPI(map[Option]interface{}{}))
	m.Register("setup_py", FromSetupScript(map[Option]interface{}{}))

	v, err := m.Get(OptOverlay)
	require.NoError(t, err)
	assert.Equal(t, "local", v)

	b, err := m.GetBool(OptOverwrite)
	require.NoError(t, err)
	assert.False(t, b)
}

// TestManagerQuestionnaireFallback tests interactive fallback for options
// listed in questionnaire_options.
func TestManagerQuestionnaireFallback(t *testing.T) {
	in := strings.NewReader("foobar\n")
	var out strings.Builder
	q := NewQuestionnaire(in, &out)

	m, err := NewManager([]string{"pypi"}, []string{"category"}, WithQuestionnaire(q))
	require.NoError(t, err)
	m.Register("pypi", FromPyPI(map[Option]interface{}{}))

	v, err := m.Get(OptCategory)
	require.NoError(t, err)
	assert.Equal(t, "foobar", v)
	assert.Contains(t, out.String(), "portage category")
}

// TestManagerDuplicateUse tests that duplicate source names are rejected.
func TestManagerDuplicateUse(t *testing.T) {
	_, err := NewManager([]string{"pypi", "pypi", "setup_py"}, nil)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

// TestManagerNoConfigs tests lookup before any source is registered.
func TestManagerNoConfigs(t *testing.T) {
	m, err := NewManager([]string{"pypi", "setup_py"}, nil)
	require.NoError(t, err)

	_, err = m.Get(OptOverlay)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

// TestManagerUnknownOption tests lookup of a name outside the schema.
func TestManagerUnknownOption(t *testing.T) {
	m, err := NewManager([]string{"pypi"}, nil)
	require.NoError(t, err)
	m.Register("pypi", FromPyPI(map[Option]interface{}{}))

	_, err = m.Get(Option("foobar"))
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

// TestManagerSkipsUnregisteredSources tests that names in use without a
// registered Config are skipped.
func TestManagerSkipsUnregisteredSources(t *testing.T) {
	m, err := NewManager([]string{"argparse", "pypi"}, nil)
	require.NoError(t, err)
	m.Register("pypi", FromPyPI(map[Option]interface{}{OptOverlay: "bar"}))

	v, err := m.Get(OptOverlay)
	require.NoError(t, err)
	assert.Equal(t, "bar", v)
}

// TestLoadFromIni tests parsing use and questionnaire_options.
func TestLoadFromIni(t *testing.T) {
	path := writeIni(t, `
[config]
overlay = local
category = dev-python

[config_manager]
use = ini pypi setup_py argparse
questionnaire_options = overlay uri package version
`)

	m, err := LoadFromIni(path, "config_manager")
	require.NoError(t, err)

	assert.Equal(t, []string{"ini", "pypi", "setup_py", "argparse"}, m.Use())
	assert.Equal(t, []string{"overlay", "uri", "package", "version"}, m.QuestionnaireOptions())

	v, err := m.Get(OptOverlay)
	require.NoError(t, err)
	assert.Equal(t, "local", v)
}

// TestLoadFromIniBootstrap tests that a missing file is created from the
// template before parsing.
func TestLoadFromIniBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gpypi.ini")

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))

	m, err := LoadFromIni(path, "config_manager")
	require.NoError(t, err)

	_, statErr = os.Stat(path)
	require.NoError(t, statErr)

	assert.Equal(t, []string{"argparse", "ini", "pypi", "setup_py"}, m.Use())
	assert.Equal(t, []string{"overlay"}, m.QuestionnaireOptions())
}

// TestLoadFromIniEmptyFile tests that an empty ini file still loads.
func TestLoadFromIniEmptyFile(t *testing.T) {
	path := writeIni(t, "")

	m, err := LoadFromIni(path, "config_manager")
	require.NoError(t, err)
	assert.Empty(t, m.Use())
}

// TestLoadFromIniDuplicateUse tests that a corrupt use list fails.
func TestLoadFromIniDuplicateUse(t *testing.T) {
	path := writeIni(t, `
[config_manager]
use = pypi pypi
`)

	_, err := LoadFromIni(path, "config_manager")
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}
