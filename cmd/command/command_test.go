package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fkunand/faculty-admin/modules/faculty/domain/ingest"
)

func TestExitCode(t *testing.T) {
	require.Equal(t, exitOK, exitCode(nil))
	require.Equal(t, 1, exitCode(errors.New("boom")))
	require.Equal(t, exitDB, exitCode(withCode(exitDB, errors.New("down"))))
	require.Equal(t, exitRejected, exitCode(fmt.Errorf("wrap: %w", withCode(exitRejected, errors.New("bad")))))
	require.NoError(t, withCode(exitDB, nil))
}

func TestImportCmd_RejectsBeforeConnecting(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "unknown kind", args: []string{"import", "students", "dosen.xlsx"}},
		{name: "missing file", args: []string{"import", "lecturers", "/nonexistent/dosen.xlsx"}},
		{name: "missing performance file", args: []string{"import", "kinerja", "/nonexistent/kinerja.xlsx"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetArgs(tc.args)
			cmd.SetOut(&bytes.Buffer{})
			err := cmd.Execute()
			require.Error(t, err)
			require.Equal(t, exitUsage, exitCode(err))
		})
	}
}

func TestImportCmd_RequiresTwoArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"import", "lecturers"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.Error(t, cmd.Execute())
}

func TestWriteJSON_Indents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, importReport{
		File:    "dosen.xlsx",
		Kind:    "lecturers",
		Columns: []ingest.Field{ingest.FieldFullName, ingest.FieldNIDN},
		Errors:  []string{},
	}))
	require.Contains(t, buf.String(), "\n  \"file\": \"dosen.xlsx\"")
	require.Contains(t, buf.String(), "\"nidn\"")
}
