package ingest

import "sort"

// ColumnMap maps canonical fields to zero-based column indexes.
type ColumnMap struct {
	index map[Field]int
}

func (m ColumnMap) Index(f Field) (int, bool) {
	i, ok := m.index[f]
	return i, ok
}

// Fields lists resolved fields in column order.
func (m ColumnMap) Fields() []Field {
	out := make([]Field, 0, len(m.index))
	for f := range m.index {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return m.index[out[i]] < m.index[out[j]] })
	return out
}

// ResolveColumns folds header labels into a ColumnMap. Each label goes to
// the first matching field of table; a field already claimed by an earlier
// column keeps its column and the later one stays unmapped.
func ResolveColumns(labels []string, table AliasTable) ColumnMap {
	index := make(map[Field]int, len(table))
	for col, label := range labels {
		field, ok := table.Resolve(label)
		if !ok {
			continue
		}
		if _, claimed := index[field]; claimed {
			continue
		}
		index[field] = col
	}
	return ColumnMap{index: index}
}
