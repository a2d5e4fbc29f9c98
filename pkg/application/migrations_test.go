package application

import (
	"embed"
	"io/fs"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/alpha/*.sql
var alphaSchema embed.FS

//go:embed testdata/beta/*.sql
var betaSchema embed.FS

func TestMigrationManager_MergesSchemas(t *testing.T) {
	m := NewMigrationManager("", logrus.New()).(*migrationManager)
	m.RegisterSchema(&alphaSchema, &betaSchema)

	merged := &mergedFS{files: m.files}
	matches, err := fs.Glob(merged, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"20260101000001_alpha.sql", "20260101000002_beta.sql"}, matches)

	raw, err := fs.ReadFile(merged, "20260101000002_beta.sql")
	require.NoError(t, err)
	require.Contains(t, string(raw), "CREATE TABLE beta")

	_, err = merged.Open("missing.sql")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMigrationManager_RegisterSameSchemaTwice(t *testing.T) {
	m := NewMigrationManager("", logrus.New()).(*migrationManager)
	m.RegisterSchema(&alphaSchema)
	require.NotPanics(t, func() { m.RegisterSchema(&alphaSchema) })
	require.Len(t, m.files, 1)
}
