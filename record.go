package shelfdb

// Record is one stored document: a schema-free mapping from attribute name
// to value. Different records in the same database may have entirely
// different attribute sets.
type Record map[string]Value

// Clone returns a copy of the record. Attribute values are shared; they are
// never mutated in place by the engine.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// merged returns r with every attribute of partial applied on top. The merge
// is shallow: a nested mapping in partial replaces the existing one
// wholesale. r itself is not modified.
func (r Record) merged(partial Record) Record {
	c := r.Clone()
	for k, v := range partial {
		c[k] = v
	}
	return c
}

// project returns a new record restricted to the named columns. Requested
// columns absent from r are omitted, never an error.
func (r Record) project(columns []string) Record {
	p := make(Record, len(columns))
	for _, col := range columns {
		if v, ok := r[col]; ok {
			p[col] = v
		}
	}
	return p
}
