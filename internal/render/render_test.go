// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dalzilio/robdd"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestOutput(t *testing.T) {
	assert.Equal(t, "dir/f.png", Output("dir/f.dot", "png"))
	assert.Equal(t, "f.gv.svg", Output("f.gv", "svg"))
}

func TestRenderMissingBinary(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "no-such-dot"), nil)
	_, err := r.Render(context.Background(), "f.dot", "png")
	assert.ErrorIs(t, err, robdd.ErrIOFailure)
}

func TestRenderNoFormat(t *testing.T) {
	r := New("", nil)
	out, err := r.Render(context.Background(), "f.dot")
	require.NoError(t, err)
	assert.Empty(t, out)
}

// fakedot writes a shell script that behaves like dot for the arguments we
// use: it copies its input to the file given after -o, or fails for format
// "bad".
func fakedot(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("needs a POSIX shell")
	}
	script := `#!/bin/sh
if [ "$1" = "-Tbad" ]; then
  echo "Format: \"bad\" not recognized" >&2
  exit 1
fi
cp "$2" "$4"
`
	path := filepath.Join(t.TempDir(), "dot")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestRender(t *testing.T) {
	r := New(fakedot(t), nil)
	dir := t.TempDir()
	dotfile := filepath.Join(dir, "f.dot")
	require.NoError(t, os.WriteFile(dotfile, []byte("digraph BDD {\n}\n"), 0o644))

	out, err := r.Render(context.Background(), dotfile, "png", "svg")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "f.png"), filepath.Join(dir, "f.svg")}, out)
	for _, o := range out {
		assert.FileExists(t, o)
	}

	_, err = r.Render(context.Background(), dotfile, "png", "bad")
	assert.ErrorIs(t, err, robdd.ErrIOFailure)
	assert.Contains(t, err.Error(), "not recognized")
}
