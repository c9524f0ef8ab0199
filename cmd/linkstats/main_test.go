package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"linkstats/internal/config"
)

const sampleDoc = `{
  "data": {
    "countries": [{"country": "Peru", "visitors": 3}, {"country": "Chile", "visitors": 1}],
    "hourly": [{"hour": "14:00", "visitors": 2}],
    "recentVisits": [{"ip": "10.0.0.1", "browser": "firefox", "referrer": "https://t.co/x"}]
  }
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LINKSTATS_ENV", config.Test)
	t.Setenv("LINKSTATS_LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	root := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNormalizeStdin(t *testing.T) {
	out, err := run(t, sampleDoc, "normalize")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	countries := report["countries"].([]any)
	require.Len(t, countries, 2)
	first := countries[0].(map[string]any)
	assert.Equal(t, "Peru", first["country"])
	assert.Equal(t, 75.0, first["percentage"])

	hourly := report["hourly"].([]any)
	require.Len(t, hourly, 24)
	assert.Equal(t, 2.0, hourly[14].(map[string]any)["visitors"])

	assert.Nil(t, report["sankey"])
}

func TestNormalizeOnlyView(t *testing.T) {
	out, err := run(t, sampleDoc, "normalize", "--only", "recentVisitors", "--enrich")
	require.NoError(t, err)

	var visits []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &visits))
	require.Len(t, visits, 1)
	assert.Equal(t, "Firefox", visits[0]["browser"])
	assert.Equal(t, "X/Twitter", visits[0]["referrerName"])
	assert.Equal(t, "", visits[0]["country"])
}

func TestNormalizeYAMLOutput(t *testing.T) {
	path := writeFile(t, "stats.yaml", "browsers:\n  - name: Safari\n    visitors: 4\n")

	out, err := run(t, "", "normalize", "--format", "yaml", "--only", "browsers", path)
	require.NoError(t, err)

	var browsers []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &browsers))
	require.Len(t, browsers, 1)
	assert.Equal(t, "Safari", browsers[0]["name"])
	assert.Equal(t, 4, browsers[0]["visitors"])
}

func TestNormalizeYAMLSankeyToJSON(t *testing.T) {
	path := writeFile(t, "flow.yaml", "sankey:\n  nodes:\n    0: origin\n    1: landing\n  links:\n    - {source: 0, target: 1, value: 4}\n")

	out, err := run(t, "", "normalize", "--only", "sankey", path)
	require.NoError(t, err)

	var graph map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &graph))
	assert.Equal(t, map[string]any{"0": "origin", "1": "landing"}, graph["nodes"])
	links := graph["links"].([]any)
	require.Len(t, links, 1)
	assert.Equal(t, 4.0, links[0].(map[string]any)["value"])
}

func TestNormalizeSeveralFiles(t *testing.T) {
	a := writeFile(t, "a.json", `{"countries":[{"country":"Peru","visitors":1}]}`)
	b := writeFile(t, "b.json", `{"countries":[]}`)

	out, err := run(t, "", "normalize", "--only", "countries", a, b)
	require.NoError(t, err)

	var outputs []struct {
		Source string           `json:"source"`
		Output []map[string]any `json:"output"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &outputs))
	require.Len(t, outputs, 2)
	assert.Equal(t, a, outputs[0].Source)
	assert.Len(t, outputs[0].Output, 1)
	assert.Equal(t, b, outputs[1].Source)
	assert.Empty(t, outputs[1].Output)
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  error
	}{
		{"unknown view", sampleDoc, []string{"normalize", "--only", "pages"}, ErrUnknownView},
		{"bad format", sampleDoc, []string{"normalize", "--format", "xml"}, config.ErrInvalidConfig},
		{"missing file", "", []string{"normalize", filepath.Join(os.TempDir(), "linkstats-missing.json")}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInvalidEnvironmentReturnsError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	t.Setenv("LINKSTATS_ENV", "bogus")

	root := newRootCmd(strings.NewReader(""), &stdout, &stderr)
	root.SetArgs([]string{"version"})

	assert.ErrorIs(t, root.Execute(), config.ErrInvalidConfig)
	assert.Empty(t, stdout.String())
}

func TestResolve(t *testing.T) {
	out, err := run(t, sampleDoc, "resolve", "-", "missing", "countries.1.country")
	require.NoError(t, err)
	assert.Equal(t, "\"Chile\"\n", out)

	_, err = run(t, sampleDoc, "resolve", "-", "countries.9")
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "linkstats dev\n", out)
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "linkstats.yaml", "outputformat: yaml\nenvironment: test\nloglevel: error\n")

	out, err := run(t, `{"languages":[{"code":"es","visitors":2}]}`, "normalize", "--config", path, "--only", "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "code: es")
}
