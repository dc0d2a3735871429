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

	chiTransport "github.com/kailas-cloud/qbet/internal/transport/chi"
	"github.com/kailas-cloud/qbet/internal/usecase/stats"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := newApp(&buf).Run(append([]string{"qbetctl"}, args...))
	return buf.String(), err
}

func TestSearchCommand_Table(t *testing.T) {
	out, err := run(t, "search", "react", "developer")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6, out)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Michael Ross")
}

func TestSearchCommand_JSONAndLimit(t *testing.T) {
	out, err := run(t, "search", "--json", "--limit", "2", "react developer")
	require.NoError(t, err)

	var resp chiTransport.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "1", resp.Items[0].ID)
	assert.Equal(t, "react developer", resp.Intent.OriginalQuery)
}

func TestSearchCommand_Errors(t *testing.T) {
	_, err := run(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUERY")

	_, err = run(t, "search", "--limit", "-1", "react")
	assert.Error(t, err)

	_, err = run(t, "--candidates", filepath.Join(t.TempDir(), "missing.yaml"), "search", "react")
	assert.Error(t, err)
}

func TestSearchCommand_NoMatch(t *testing.T) {
	out, err := run(t, "search", "disponible immédiatement moins de 50")
	require.NoError(t, err)
	assert.Contains(t, out, "no matching freelancers")
}

func TestIntentCommand(t *testing.T) {
	out, err := run(t, "intent", "3 développeurs react à manhatan budget 130")
	require.NoError(t, err)

	var body chiTransport.IntentBody
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "manhattan", body.Location)
	require.NotNil(t, body.Limit)
	assert.Equal(t, 3, *body.Limit)
	require.NotNil(t, body.MaxBudget)
	assert.InDelta(t, 130, *body.MaxBudget, 0)
	assert.Contains(t, body.Skills, "react")
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", "--top", "1")
	require.NoError(t, err)

	var m stats.Market
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, 5, m.Total)
	assert.Equal(t, 127, m.AverageRate)
	require.Len(t, m.TopSkills, 1)
	assert.Equal(t, "Python", m.TopSkills[0].Skill)
}

func TestCandidatesFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cands.yaml")
	doc := "candidates:\n  - id: kenji\n    name: Kenji Sato\n    skills: [Go]\n    hourly_rate: 90\n    rating: 4.7\n    availability: immediate\n    location: Tokyo, Japan\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := run(t, "-c", path, "search", "golang à tokio")
	require.NoError(t, err)
	assert.Contains(t, out, "Kenji Sato")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbet.yaml")
	doc := "http:\n  port: 8080\nsearch:\n  vocabulary:\n    skills: [cobol]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, err := run(t, "--config", path, "intent", "react")
	require.NoError(t, err)

	var body chiTransport.IntentBody
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Empty(t, body.Skills)
}

func TestAppCommands(t *testing.T) {
	app := newApp(&bytes.Buffer{})
	names := make([]string, 0, len(app.Commands))
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"search", "intent", "stats", "mcp"}, names)
}
