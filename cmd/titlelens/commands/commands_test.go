package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/titlelens/cmd/titlelens/commands"
	"github.com/Sumatoshi-tech/titlelens/pkg/config"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
	"github.com/Sumatoshi-tech/titlelens/pkg/observability"
	"github.com/Sumatoshi-tech/titlelens/pkg/render"
)

const sampleCSV = `show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description
s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,A film.
s2,TV Show,Blood & Water,,Ama Qamata,South Africa,"September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas",A show.
s3,Movie,Sankofa,Haile Gerima,,"United States, Ghana","September 24, 2021",1993,TV-MA,125 min,"Dramas, Independent Movies",Another film.
`

func writeDataset(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "netflix_titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := commands.NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Structure(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand()
	assert.Equal(t, "titlelens", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	assert.Subset(t, names, []string{"report", "serve", "mcp", "version"})

	for _, flag := range []string{"config", "log-level", "log-json", "verbose", "quiet"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "titlelens "))
	assert.Contains(t, out, "commit:")
}

func TestReportCommand_JSONToStdout(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "report", writeDataset(t), "--format", "json", "-q")
	require.NoError(t, err)

	var snap struct {
		Filter   filter.State   `json:"filter"`
		Records  int            `json:"records"`
		Selected int            `json:"selected"`
		Counts   map[string]int `json:"counts"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, filter.All, snap.Filter.Type)
	assert.Equal(t, 3, snap.Records)
	assert.Equal(t, 3, snap.Selected)
	assert.Equal(t, map[string]int{"Movie": 2, "TV Show": 1}, snap.Counts)
}

func TestReportCommand_TypeFlag(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "report", writeDataset(t), "--format", "yaml", "--type", "tv show", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "type: TV Show")
	assert.Contains(t, out, "selected: 1")
	assert.Contains(t, out, "measure: seasons")
}

func TestReportCommand_TextFromStdin(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, sampleCSV, "report", "-", "--format", "text", "--title", "My Catalog", "--no-color", "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "MY CATALOG")
	assert.Contains(t, out, "Filter: All")
	assert.Contains(t, out, "Top Genres")
	assert.Contains(t, out, render.MoviesByDefaultNote)
	assert.NotContains(t, out, "\x1b[")
}

func TestReportCommand_PlotToFile(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "report.html")

	out, _, err := execute(t, "", "report", writeDataset(t), "-o", output, "--theme", "light", "-q")
	require.NoError(t, err)
	assert.Empty(t, out)

	html, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<html")
	assert.Contains(t, string(html), "Titles by Release Year")
}

func TestReportCommand_Errors(t *testing.T) {
	t.Parallel()

	dataset := writeDataset(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no source", args: []string{"report"}, want: commands.ErrNoSource},
		{name: "bad type", args: []string{"report", dataset, "--type", "Documentary"}, want: filter.ErrUnknownType},
		{name: "bad format", args: []string{"report", dataset, "--format", "pdf"}, want: config.ErrInvalidFormat},
		{name: "bad theme", args: []string{"report", dataset, "--theme", "neon"}, want: config.ErrInvalidTheme},
		{name: "bad log level", args: []string{"report", dataset, "--log-level", "loud"}, want: observability.ErrUnknownLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReportCommand_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "report", filepath.Join(t.TempDir(), "missing.csv"), "-q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load dataset")
}

func TestReportCommand_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dataset := writeDataset(t)
	cfgPath := filepath.Join(dir, "titlelens.yaml")

	cfgYAML := "dataset:\n  source: " + dataset + "\n  default_type: Movie\nrender:\n  format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	out, _, err := execute(t, "", "report", "--config", cfgPath, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, `"selected": 2`)
}

func TestReportCommand_VerboseAndQuietExclusive(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "report", writeDataset(t), "-v", "-q")
	require.Error(t, err)
}

func TestServeCommand_InvalidPort(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "serve", writeDataset(t), "--port", "70000")
	require.ErrorIs(t, err, config.ErrInvalidPort)
}

func TestMCPCommand_RejectsStdinDataset(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, sampleCSV, "mcp", "-")
	require.ErrorIs(t, err, commands.ErrStdinSource)
}
