package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAliasTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aliases.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[fields.full_name]
contains = ["pegawai"]

[fields.nip]
exact = ["N.I.P"]
`), 0o644))

	table, err := LoadAliasTable(path)
	require.NoError(t, err)

	cols := ResolveColumns([]string{"Pegawai", "N.I.P"}, table)
	assert.Equal(t, []Field{FieldFullName, FieldNIP}, cols.Fields())

	idx, err := LocateHeader(grid(row("Pegawai", "N.I.P")), LecturerWindow, table, MemberHeader)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	assert.Empty(t, ResolveColumns([]string{"N.I.P"}, DefaultAliasTable()).Fields(), "default table is untouched")
}

func TestParseAliasExtensions_Errors(t *testing.T) {
	t.Parallel()

	_, err := ParseAliasExtensions(`[fields.shoe_size]
exact = ["ukuran"]`, DefaultAliasTable())
	require.Error(t, err)

	_, err = ParseAliasExtensions(`[fields.nidn]
contains = ["nidn"]`, DefaultAliasTable())
	require.Error(t, err)

	_, err = ParseAliasExtensions(`not toml = = =`, DefaultAliasTable())
	require.Error(t, err)
}

func TestLoadAliasTable_Default(t *testing.T) {
	t.Parallel()

	table, err := LoadAliasTable("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAliasTable(), table)
}
