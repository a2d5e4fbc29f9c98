package application

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

func NewMigrationManager(dsn string, logger *logrus.Logger) MigrationManager {
	return &migrationManager{dsn: dsn, logger: logger, files: map[string]schemaFile{}}
}

type schemaFile struct {
	fsys *embed.FS
	path string
}

type migrationManager struct {
	dsn    string
	logger *logrus.Logger
	files  map[string]schemaFile
}

// RegisterSchema adds every .sql file of the given filesystems. Files are
// addressed by base name, which must carry a unique goose version prefix.
func (m *migrationManager) RegisterSchema(fsyss ...*embed.FS) {
	for _, fsys := range fsyss {
		err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".sql") {
				return nil
			}
			base := path.Base(p)
			if prev, ok := m.files[base]; ok && prev.path != p {
				return fmt.Errorf("duplicate migration file %q", base)
			}
			m.files[base] = schemaFile{fsys: fsys, path: p}
			return nil
		})
		if err != nil {
			panic(err)
		}
	}
}

func (m *migrationManager) provider() (*goose.Provider, func(), error) {
	db, err := sql.Open("postgres", m.dsn)
	if err != nil {
		return nil, nil, err
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, &mergedFS{files: m.files})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return p, func() { _ = db.Close() }, nil
}

func (m *migrationManager) Run(ctx context.Context) error {
	p, closeFn, err := m.provider()
	if err != nil {
		return err
	}
	defer closeFn()
	results, err := p.Up(ctx)
	for _, r := range results {
		m.logger.Infof("migrated %s in %s", r.Source.Path, r.Duration)
	}
	return err
}

func (m *migrationManager) Rollback(ctx context.Context) error {
	p, closeFn, err := m.provider()
	if err != nil {
		return err
	}
	defer closeFn()
	r, err := p.Down(ctx)
	if r != nil {
		m.logger.Infof("rolled back %s", r.Source.Path)
	}
	return err
}

func (m *migrationManager) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	p, closeFn, err := m.provider()
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return p.Status(ctx)
}

// mergedFS exposes registered schema files as one flat directory.
type mergedFS struct {
	files map[string]schemaFile
}

func (f *mergedFS) Open(name string) (fs.File, error) {
	if name == "." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	sf, ok := f.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return sf.fsys.Open(sf.path)
}

func (f *mergedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	names := make([]string, 0, len(f.files))
	for n := range f.files {
		names = append(names, n)
	}
	sort.Strings(names)
	entries := make([]fs.DirEntry, 0, len(names))
	for _, n := range names {
		sf := f.files[n]
		info, err := fs.Stat(sf.fsys, sf.path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}
