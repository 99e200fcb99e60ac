package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shift/internal/rec"
	"shift/internal/shift"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	e := newEnv(newTerminal(strings.NewReader(stdin), out))
	cmd := newRootCmd(e)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{}, args...))
	err := e.execute(context.Background(), cmd)
	return out.String(), err
}

func TestShiftArgs(t *testing.T) {
	for name, tc := range map[string]struct {
		args []string
		want string
	}{
		"forward":        {[]string{"abc123"}, "bcd234"},
		"backward":       {[]string{"abc123", "--backwards"}, "zab012"},
		"positions":      {[]string{"-p", "2", "Hello,", "World"}, "Jgnnq,Yqtnf"},
		"range":          {[]string{"-p", "7", "-r", "1,2,3,4,5", "a1"}, "h3"},
		"joined":         {[]string{"ab", "c1"}, "bcd2"},
		"ignore numbers": {[]string{"--ignore-numbers", "a1"}, "b1"},
		"ignore letters": {[]string{"--ignore-letters", "a1"}, "a2"},
		"after dashdash": {[]string{"--", "next"}, "ofyu"},
	} {
		t.Run(name, func(t *testing.T) {
			have, err := run(t, "", tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, have)
		})
	}
}

func TestShiftPiped(t *testing.T) {
	have, err := run(t, "abcde\n")
	require.NoError(t, err)
	assert.Equal(t, "bcdef", have)

	have, err = run(t, "abc\n", "--backwards", "-p", "3")
	require.NoError(t, err)
	assert.Equal(t, "xyz", have)
}

func TestShiftNoInput(t *testing.T) {
	out := &bytes.Buffer{}
	term := &terminal{in: strings.NewReader(""), out: out, inTTY: true}
	e := newEnv(term)
	cmd := newRootCmd(e)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.ErrorIs(t, e.execute(context.Background(), cmd), errNoInput)
}

func TestShiftTerminalNewline(t *testing.T) {
	out := &bytes.Buffer{}
	term := &terminal{in: strings.NewReader(""), out: out, outTTY: true}
	e := newEnv(term)
	cmd := newRootCmd(e)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"a"})

	require.NoError(t, e.execute(context.Background(), cmd))
	assert.Equal(t, "b\n", out.String())
}

func TestShiftErrors(t *testing.T) {
	_, err := run(t, "", "-r", "2,3,4", "9")
	assert.ErrorIs(t, err, shift.ErrNotInRange)

	_, err = run(t, "", "-r", "1,1", "1")
	assert.ErrorIs(t, err, shift.ErrDuplicate)
}

func TestShiftLines(t *testing.T) {
	have, err := run(t, "a\nz9\nHi!", "--lines", "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "b\na10\nIj!", have)
}

func TestVersion(t *testing.T) {
	have, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, "shift v1.0.0\n", have)
}

func TestConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "shift.yaml")
	require.NoError(t, os.WriteFile(file, []byte("positions: 2\nignoreNumbers: true\n"), 0644))

	have, err := run(t, "", "--config", file, "abc1")
	require.NoError(t, err)
	assert.Equal(t, "cde1", have)

	// Flags override the file.
	have, err = run(t, "", "--config", file, "-p", "1", "abc1")
	require.NoError(t, err)
	assert.Equal(t, "bcd1", have)

	_, err = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "a")
	assert.Error(t, err)
}

func TestProfileContinuation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state.db")
	common := []string{"--profile", "p", "--state-file", db}

	have, err := run(t, "", append([]string{"abc123"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "bcd234", have)

	have, err = run(t, "", append([]string{"next", "letter"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "e", have)

	have, err = run(t, "", append([]string{"next", "number"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "5", have)

	have, err = run(t, "", append([]string{"previous", "number"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "4", have)

	have, err = run(t, "", "state", "list", "--state-file", db)
	require.NoError(t, err)
	assert.Equal(t, "p\te\t4\n", have)

	_, err = run(t, "", "state", "reset", "p", "--state-file", db)
	require.NoError(t, err)

	// A reset profile starts again from the default state.
	have, err = run(t, "", append([]string{"previous", "letter"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "y", have)
}

func TestStepArgs(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state.db")

	_, err := run(t, "", "next", "word", "--state-file", db)
	assert.Error(t, err)

	_, err = run(t, "", "next", "--state-file", db)
	assert.Error(t, err)

	_, err = run(t, "", "next", "number", "-r", "5,6", "--state-file", db)
	assert.ErrorIs(t, err, shift.ErrNotInRange)
}

func TestStateListCorruptRecord(t *testing.T) {
	file := filepath.Join(t.TempDir(), "state.db")

	db, err := bbolt.Open(file, 0600, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte("profiles"))
		if err != nil {
			return err
		}
		return b.Put([]byte("broken"), []byte("{"))
	}))
	require.NoError(t, db.Close())

	_, err = run(t, "", "state", "list", "--state-file", file)
	require.Error(t, err)

	var p *rec.Panic
	assert.ErrorAs(t, err, &p)
}

func TestLogFileClosedOnError(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "log")
	cfg := filepath.Join(dir, "shift.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\n  dir: "+logDir+"\n"), 0644))

	e := newEnv(newTerminal(strings.NewReader(""), &bytes.Buffer{}))
	cmd := newRootCmd(e)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfg, "-r", "2,3", "9"})

	err := e.execute(context.Background(), cmd)
	require.ErrorIs(t, err, shift.ErrNotInRange)
	assert.Nil(t, e.logEnd)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "command failed")
}
