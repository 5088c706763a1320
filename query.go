package shelfdb

// Query takes a snapshot of all records, keeps those matching every
// predicate in order (logical AND; an empty or nil predicate list passes
// everything), and returns them keyed by their original key. No key
// ordering is guaranteed.
//
// When selectColumns is non-nil, each surviving record is replaced by a new
// record restricted to the named columns; requested columns absent from a
// record are omitted, never an error.
//
// A predicate failure (such as a malformed pattern) or an undecodable
// record aborts the whole query; there is no partial result.
func (db *DB) Query(predicates []Predicate, selectColumns []string) (map[string]Record, error) {
	result := make(map[string]Record)
	err := db.view(func(tx storageTx) error {
		return tx.ForEach(func(key string, raw []byte) error {
			rec, err := decodeRecord(key, raw)
			if err != nil {
				return err
			}
			for _, p := range predicates {
				ok, err := p(key, rec)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}
			if selectColumns == nil {
				result[key] = rec
			} else {
				result[key] = rec.project(selectColumns)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
