package shelfdb

import (
	"path"
	"regexp"
)

// Predicate is a boolean test over a (key, record) pair used to filter a
// query. Predicates built by the constructors below close over a column
// name and a comparison value.
//
// Every built-in predicate first checks that the column value is present
// and truthy (non-null, non-zero, non-false, non-empty) and evaluates to
// false otherwise, regardless of the comparison. In particular
// Equals("age", Int(0)) never matches a record whose age is legitimately 0,
// and NotContains over an empty list is false even though "not containing"
// is vacuously true there. This mirrors the store's documented behavior;
// callers needing to match falsy values must fetch records and compare
// themselves.
type Predicate func(key string, rec Record) (bool, error)

func column(col string, cmp func(v Value) (bool, error)) Predicate {
	return func(_ string, rec Record) (bool, error) {
		v, ok := rec[col]
		if !ok || !v.truthy() {
			return false, nil
		}
		return cmp(v)
	}
}

// GreaterThan matches records whose column value is greater than value.
// Ordering is defined over numbers and strings; other kinds never match.
func GreaterThan(col string, value Value) Predicate {
	return column(col, func(v Value) (bool, error) {
		return valueGreater(v, value), nil
	})
}

// Equals matches records whose column value equals value.
func Equals(col string, value Value) Predicate {
	return column(col, func(v Value) (bool, error) {
		return valueEqual(v, value), nil
	})
}

// NotEquals matches records whose column value differs from value.
func NotEquals(col string, value Value) Predicate {
	return column(col, func(v Value) (bool, error) {
		return !valueEqual(v, value), nil
	})
}

// Contains matches records whose column value contains value: substring for
// strings, element membership for lists, key membership for maps.
func Contains(col string, value Value) Predicate {
	return column(col, func(v Value) (bool, error) {
		return valueContains(v, value), nil
	})
}

// NotContains is the negation of Contains.
func NotContains(col string, value Value) Predicate {
	return column(col, func(v Value) (bool, error) {
		return !valueContains(v, value), nil
	})
}

// Wildcard matches records whose column value is a string matching the
// shell-style glob pattern (*, ?, [...]). A malformed pattern aborts the
// query with a PatternError.
func Wildcard(col, pattern string) Predicate {
	return column(col, func(v Value) (bool, error) {
		s, ok := v.AsString()
		if !ok {
			return false, nil
		}
		m, err := path.Match(pattern, s)
		if err != nil {
			return false, patternErrf(col, pattern, err)
		}
		return m, nil
	})
}

// Regex matches records whose column value is a string containing a match
// of the regular expression (unanchored search, not a full match). A
// malformed pattern aborts the query with a PatternError.
func Regex(col, pattern string) Predicate {
	var re *regexp.Regexp
	return column(col, func(v Value) (bool, error) {
		s, ok := v.AsString()
		if !ok {
			return false, nil
		}
		if re == nil {
			r, err := regexp.Compile(pattern)
			if err != nil {
				return false, patternErrf(col, pattern, err)
			}
			re = r
		}
		return re.MatchString(s), nil
	})
}

// Gt is an alias for GreaterThan.
func Gt(col string, value Value) Predicate { return GreaterThan(col, value) }

// Eq is an alias for Equals.
func Eq(col string, value Value) Predicate { return Equals(col, value) }

// Ne is an alias for NotEquals.
func Ne(col string, value Value) Predicate { return NotEquals(col, value) }

// Ct is an alias for Contains.
func Ct(col string, value Value) Predicate { return Contains(col, value) }

// Nct is an alias for NotContains.
func Nct(col string, value Value) Predicate { return NotContains(col, value) }

// Wc is an alias for Wildcard.
func Wc(col, pattern string) Predicate { return Wildcard(col, pattern) }

// Re is an alias for Regex.
func Re(col, pattern string) Predicate { return Regex(col, pattern) }
