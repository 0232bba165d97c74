package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/paginater/internal/config"
	"github.com/maxviazov/paginater/internal/pagination"
)

const peopleJSON = `[
  {"id": 1, "name": "Ada", "email": "ada@example.com"},
  {"id": 2, "name": "Grace", "email": "grace@example.com"},
  {"id": 3, "name": "Ken"},
  {"id": 4, "name": "Rob", "email": "rob@example.com"},
  {"id": 5, "name": "Russ", "email": "russ@example.com"}
]`

const peopleYAML = `- id: 1
  name: Ada
- id: 2
  name: Grace
- id: 3
  name: Ken
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

type pageOutput struct {
	Items []map[string]any `json:"items"`
	Meta  pagination.Meta  `json:"meta"`
}

func decode(t *testing.T, out string) pageOutput {
	t.Helper()
	var p pageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &p), out)
	return p
}

func ids(p pageOutput) []float64 {
	out := make([]float64, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, it["id"].(float64))
	}
	return out
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd("1.2.3")
	assert.Equal(t, "1.2.3", cmd.Version)
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"page", "serve", "migrate"})
}

func TestPage_Windows(t *testing.T) {
	file := writeFile(t, "people.json", peopleJSON)

	tests := []struct {
		name      string
		args      []string
		wantIDs   []float64
		wantPage  int
		wantPages int
		wantLimit *int
	}{
		{"defaults", nil, []float64{1, 2, 3, 4, 5}, 1, 1, ptr(25)},
		{"per and page", []string{"--per", "2", "--page", "2"}, []float64{3, 4}, 2, 3, ptr(2)},
		{"last partial page", []string{"--per", "2", "--page", "3"}, []float64{5}, 3, 3, ptr(2)},
		{"past the end", []string{"--per", "2", "--page", "7"}, []float64{}, 7, 3, ptr(2)},
		{"padding", []string{"--per", "2", "--padding", "1"}, []float64{2, 3}, 1, 3, ptr(2)},
		{"all", []string{"--all", "--page", "3"}, []float64{1, 2, 3, 4, 5}, 1, 1, nil},
		{"max per clamps", []string{"--per", "4", "--max-per", "3"}, []float64{1, 2, 3}, 1, 2, ptr(3)},
		{"max pages caps count", []string{"--per", "1", "--max-pages", "2"}, []float64{1}, 1, 2, ptr(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", append([]string{"page", file}, tt.args...)...)
			require.NoError(t, err)
			p := decode(t, out)
			assert.Equal(t, tt.wantIDs, ids(p))
			assert.Equal(t, tt.wantPage, p.Meta.CurrentPage)
			assert.Equal(t, tt.wantPages, p.Meta.TotalPages)
			assert.Equal(t, tt.wantLimit, p.Meta.Limit)
			assert.Equal(t, 5, p.Meta.TotalCount)
		})
	}
}

func ptr(n int) *int { return &n }

func TestPage_ExposeAndRename(t *testing.T) {
	file := writeFile(t, "people.json", peopleJSON)

	out, _, err := execute(t, "", "page", file, "--per", "3", "--expose", "name,id", "--rename", "name=full_name")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `{"items":[{"full_name":"Ada","id":1},`), out)

	out, _, err = execute(t, "", "page", file, "--per", "3", "--page", "1")
	require.NoError(t, err)
	p := decode(t, out)
	// keys come out alphabetically; a row missing a key simply omits it
	assert.True(t, strings.HasPrefix(out, `{"items":[{"email":"ada@example.com","id":1,"name":"Ada"}`), out)
	_, hasEmail := p.Items[2]["email"]
	assert.False(t, hasEmail)
}

func TestPage_YAMLInputAndFormats(t *testing.T) {
	file := writeFile(t, "people.yaml", peopleYAML)

	out, _, err := execute(t, "", "page", file, "--per", "2", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "items:\n")
	assert.Contains(t, out, "name: Ada")
	assert.Contains(t, out, "total_count: 3")
	assert.NotContains(t, out, "Ken")

	out, _, err = execute(t, "", "page", file, "--per", "2", "--page", "2", "-f", "xml")
	require.NoError(t, err)
	assert.Contains(t, out, "<response>")
	assert.Contains(t, out, "<name>Ken</name>")
	assert.Contains(t, out, "<current_page>2</current_page>")
}

func TestPage_Stdin(t *testing.T) {
	out, _, err := execute(t, peopleJSON, "page", "-", "--per", "1", "--page", "5")
	require.NoError(t, err)
	assert.Equal(t, []float64{5}, ids(decode(t, out)))
}

func TestPage_Errors(t *testing.T) {
	file := writeFile(t, "people.json", peopleJSON)
	notArray := writeFile(t, "obj.json", `{"id": 1}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"page", filepath.Join(t.TempDir(), "nope.json")}, "read input"},
		{"not an array", []string{"page", notArray}, "array of objects"},
		{"bad format", []string{"page", file, "--format", "csv"}, "unknown format"},
		{"per with all", []string{"page", file, "--per", "2", "--all"}, "mutually exclusive"},
		{"bad page", []string{"page", file, "--page", "0"}, "--page"},
		{"negative per", []string{"page", file, "--per", "-2"}, "--per"},
		{"rename syntax", []string{"page", file, "--rename", "name"}, "from=to"},
		{"rename unexposed", []string{"page", file, "--expose", "id", "--rename", "name=n"}, "not exposed"},
		{"no file", []string{"page"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPage_DebugLogsToStderr(t *testing.T) {
	file := writeFile(t, "people.json", peopleJSON)
	out, errOut, err := execute(t, "", "page", file, "--debug", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"message":"input loaded"`)
	assert.NotContains(t, out, "input loaded")
}

func TestMigrate_RequiresPostgres(t *testing.T) {
	cfgFile := writeFile(t, "config.yaml", "app:\n  name: paginater\nstorage:\n  driver: memory\n")
	_, _, err := execute(t, "", "migrate", "up", "--config", cfgFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestServe_BadConfig(t *testing.T) {
	_, _, err := execute(t, "", "serve", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config loading failed")
}

func TestNewEngine_MemorySeeded(t *testing.T) {
	cfgFile := writeFile(t, "config.yaml", "app:\n  name: paginater\n  admin_token: tok\nstorage:\n  driver: memory\n  seed: true\npagination:\n  max_per_page: 50\n")
	cfg, err := config.Load(cfgFile)
	require.NoError(t, err)

	log := zerolog.Nop()
	st, err := openStorage(t.Context(), cfg, &log)
	require.NoError(t, err)
	defer st.close()

	r := newEngine(cfg, st, log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/articles?per=200", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p pageOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 3*seedPerAuthor, p.Meta.TotalCount)
	require.NotNil(t, p.Meta.Limit)
	assert.Equal(t, 100, *p.Meta.Limit, "article type caps per page at 100")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/authors?per=200", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 50, *p.Meta.Limit, "author type inherits the root cap")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
