package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/lingo/internal/cli"
)

func writeLocales(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"en/common.json": `{
			"hello": "Hello",
			"bye": "Bye",
			"menu": [{"title": "Home", "hint": "Start here"}, {"title": "About"}],
			"card": {"$fence": {"title": "Card", "body": "Body"}}
		}`,
		"de/common.json": `{
			"hello": "Hallo",
			"menu": [{"title": "Start"}],
			"card": {"$fence": {"title": "Karte"}}
		}`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type resolved struct {
	Language string              `yaml:"language"`
	Resolved string              `yaml:"resolved"`
	Fallback bool                `yaml:"fallback"`
	Path     string              `yaml:"path"`
	Value    any                 `yaml:"value"`
	Trace    []map[string]string `yaml:"trace"`
}

func decodeResolved(t *testing.T, out string) resolved {
	t.Helper()
	var r resolved
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	return r
}

func TestResolve(t *testing.T) {
	t.Parallel()

	dir := writeLocales(t)

	t.Run("merges the language over the default", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "resolve", "--dir", dir, "--lang", "de")
		require.NoError(t, err)

		r := decodeResolved(t, out)
		assert.Equal(t, "de", r.Language)
		assert.Equal(t, "de", r.Resolved)
		assert.False(t, r.Fallback)

		root := r.Value.(map[string]any)
		common := root["common"].(map[string]any)
		assert.Equal(t, "Hallo", common["hello"])
		assert.Equal(t, "Bye", common["bye"])
		assert.Equal(t, []any{map[string]any{"title": "Start", "hint": "Start here"}}, common["menu"])
		assert.Equal(t, map[string]any{"title": "Karte"}, common["card"])
	})

	t.Run("prints one path", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "resolve", "--dir", dir, "--lang", "de", "--path", "common.menu[0].hint")
		require.NoError(t, err)

		r := decodeResolved(t, out)
		assert.Equal(t, "common.menu[0].hint", r.Path)
		assert.Equal(t, "Start here", r.Value)
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "resolve", "--dir", dir, "--lang", "de", "--path", "common.menu[1]")
		require.ErrorIs(t, err, cli.ErrPathNotFound)
	})

	t.Run("unknown language uses the default tree", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "resolve", "--dir", dir, "--lang", "xx", "--path", "common.hello")
		require.NoError(t, err)

		r := decodeResolved(t, out)
		assert.True(t, r.Fallback)
		assert.Equal(t, "Hello", r.Value)
	})

	t.Run("trace names the origin of each leaf", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "resolve", "--dir", dir, "--lang", "de", "--trace")
		require.NoError(t, err)

		origins := map[string]string{}
		for _, e := range decodeResolved(t, out).Trace {
			origins[e["path"]] = e["origin"]
		}
		assert.Equal(t, "active", origins["common.hello"])
		assert.Equal(t, "default", origins["common.bye"])
		assert.Equal(t, "fenced", origins["common.card"])
	})

	t.Run("pseudo-localizes strings", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "resolve", "--dir", dir, "--lang", "de", "--pseudo", "--path", "common.hello")
		require.NoError(t, err)

		r := decodeResolved(t, out)
		assert.NotEqual(t, "Hallo", r.Value)
	})
}

func TestLangs(t *testing.T) {
	t.Parallel()

	dir := writeLocales(t)

	t.Run("default first", func(t *testing.T) {
		t.Parallel()
		out, err := run(t, "langs", "--dir", dir)
		require.NoError(t, err)
		assert.Equal(t, "en\nde\n", out)
	})

	t.Run("config file", func(t *testing.T) {
		t.Parallel()
		cfg := filepath.Join(t.TempDir(), "lingo.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("dir: "+dir+"\ndefault-lang: de\n"), 0o644))

		out, err := run(t, "langs", "--config", cfg)
		require.NoError(t, err)
		assert.Equal(t, "de\nen\n", out)
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "langs", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestLangs_Env(t *testing.T) {
	dir := writeLocales(t)
	t.Setenv("LINGO_DIR", dir)
	t.Setenv("LINGO_DEFAULT_LANG", "de")

	out, err := run(t, "langs")
	require.NoError(t, err)
	assert.Equal(t, "de\nen\n", out)
}

func TestBackendErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{name: "unknown source", args: []string{"langs", "--source", "ftp"}, err: cli.ErrUnknownSource},
		{name: "postgres without url", args: []string{"langs", "--source", "postgres"}, err: cli.ErrMissingSetting},
		{name: "redis without url", args: []string{"langs", "--source", "redis"}, err: cli.ErrMissingSetting},
		{name: "migrate without url", args: []string{"migrate"}, err: cli.ErrMissingSetting},
		{name: "watch needs fs", args: []string{"serve", "--source", "postgres", "--watch"}, err: cli.ErrWatchNeedsDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := run(t, tt.args...)
			require.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()
		_, err := run(t, "langs", "--log-level", "loud")
		require.Error(t, err)
	})
}

func TestPush_FSIsNotWritable(t *testing.T) {
	t.Parallel()

	dir := writeLocales(t)
	_, err := run(t, "push", "--dir", dir)
	require.ErrorIs(t, err, cli.ErrNotWritable)
}

// lineWriter hands every written line to a channel.
type lineWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	lines chan string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			w.buf.WriteString(line)
			break
		}
		w.lines <- strings.TrimSpace(line)
	}
	return len(p), nil
}

func TestServe(t *testing.T) {
	t.Parallel()

	dir := writeLocales(t)
	out := &lineWriter{lines: make(chan string, 8)}

	cmd := cli.NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"serve", "--dir", dir, "--addr", "127.0.0.1:0", "--cache-ttl", "1m"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	var addr string
	select {
	case line := <-out.lines:
		addr = strings.TrimPrefix(line, "listening on ")
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/v/de/common/bye")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Value string `json:"value"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Bye", body.Value)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
