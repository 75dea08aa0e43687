package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecodeStdin(t *testing.T) {
	out, err := run(t, "Hello, World!", "encode")
	require.NoError(t, err)
	assert.Equal(t, "6DMW88Lsgjf8QTl5rV5\n", out)

	out, err = run(t, "6DMW88Lsgjf8QTl5rV5\r\n", "decode")
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", out)
}

func TestEncodeDecodeFile(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.bin")
	require.NoError(t, os.WriteFile(raw, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, 0o644))

	out, err := run(t, "", "encode", raw)
	require.NoError(t, err)
	assert.Equal(t, "001IYT0XLWRglqewhlWlr8\n", out)

	encoded := filepath.Join(dir, "encoded.txt")
	require.NoError(t, os.WriteFile(encoded, []byte(out), 0o644))

	out, err = run(t, "", "decode", encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, []byte(out))

	_, err = run(t, "", "encode", filepath.Join(dir, "missing"))
	assert.ErrorContains(t, err, "error reading file")
}

func TestDecodeErrors(t *testing.T) {
	_, err := run(t, "09", "decode")
	assert.ErrorContains(t, err, "malformed terminator")

	_, err = run(t, "", "decode")
	assert.ErrorContains(t, err, "empty input")
}

func TestIntCommands(t *testing.T) {
	out, err := run(t, "", "int", "encode", "0", "97281928754", "18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, "0\n1iBd3f0\nLygHa16AHYF\n", out)

	out, err = run(t, "", "int", "decode", "1iBd3f0", "z")
	require.NoError(t, err)
	assert.Equal(t, "97281928754\n61\n", out)

	_, err = run(t, "", "int", "encode", "12x")
	assert.ErrorContains(t, err, "invalid integer")

	_, err = run(t, "", "int", "decode", "zzzzzzzzzzz")
	assert.ErrorContains(t, err, "overflows")
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "", "token", "--sequence", "61", "-c", "3", "--prefix", "id")
	require.NoError(t, err)
	assert.Equal(t, "id_z\nid_10\nid_11\n", out)

	out, err = run(t, "", "token", "-c", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0], lines[1])

	out, err = run(t, "", "token", "--random", "4")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "4"), out)

	_, err = run(t, "", "token", "--sequence", "-1")
	assert.Error(t, err)
}

func TestTrimNewlines(t *testing.T) {
	assert.Equal(t, "abc", trimNewlines("abc\r\n\n"))
	assert.Equal(t, "", trimNewlines("\n"))
}
