package ingest

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-faster/errors"
)

type aliasFileEntry struct {
	Exact    []string `toml:"exact"`
	Contains []string `toml:"contains"`
}

type aliasFile struct {
	Fields map[string]aliasFileEntry `toml:"fields"`
}

// ParseAliasExtensions decodes extra header spellings:
//
//	[fields.full_name]
//	contains = ["nama pegawai"]
//	[fields.nip]
//	exact = ["nip/nik"]
func ParseAliasExtensions(data string, base AliasTable) (map[Field][]Matcher, error) {
	var file aliasFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, errors.Wrap(err, "decode alias file")
	}
	out := make(map[Field][]Matcher, len(file.Fields))
	for name, entry := range file.Fields {
		field := Field(name)
		if _, ok := base.lookup(field); !ok {
			return nil, errors.Errorf("unknown field %q in alias file", name)
		}
		for _, p := range entry.Exact {
			out[field] = append(out[field], Exact(p))
		}
		for _, p := range entry.Contains {
			if field.IsIdentifier() {
				return nil, errors.Errorf("field %q only accepts exact aliases", name)
			}
			out[field] = append(out[field], Contains(p))
		}
	}
	return out, nil
}

// LoadAliasTable returns the default table, extended from path when set.
func LoadAliasTable(path string) (AliasTable, error) {
	table := DefaultAliasTable()
	if path == "" {
		return table, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read alias file")
	}
	extra, err := ParseAliasExtensions(string(raw), table)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return table.Extend(extra), nil
}
