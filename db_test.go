package shelfdb

import (
	"errors"
	"os"
	"reflect"
	"testing"
)

func TestInsertThenGet(t *testing.T) {
	db := setup(t)

	rec := Record{
		"name":   String("John"),
		"age":    Int(25),
		"score":  Float(7.5),
		"active": Bool(true),
		"tags":   List(String("a"), String("b")),
		"addr":   Map(map[string]Value{"city": String("New York"), "zip": String("10001")}),
	}
	ensure(t, db.Insert("1", rec))

	got, found, err := db.Get("1")
	ensure(t, err)
	if !found {
		t.Fatalf("record not found after insert")
	}
	deepEqual(t, got, rec)

	_, found, err = db.Get("nope")
	ensure(t, err)
	if found {
		t.Errorf("found a record under a key that was never inserted")
	}
}

func TestInsertOverwritesWholeRecord(t *testing.T) {
	db := setup(t)

	ensure(t, db.Insert("1", Record{"name": String("John"), "age": Int(25)}))
	ensure(t, db.Insert("1", Record{"city": String("Chicago")}))

	got, _, err := db.Get("1")
	ensure(t, err)
	deepEqual(t, got, Record{"city": String("Chicago")})
}

func TestNewKeyAllocation(t *testing.T) {
	db := setup(t)

	key := must(db.New(Record{"name": String("Tom")}))
	deepEqual(t, key, "1")

	ensure(t, db.Insert("2", Record{"name": String("Alice")}))
	key = must(db.New(Record{"name": String("Bob")}))
	deepEqual(t, key, "3")

	// Non-numeric keys never affect allocation.
	ensure(t, db.Clear())
	ensure(t, db.Insert("abc", Record{"name": String("X")}))
	key = must(db.New(Record{"name": String("Y")}))
	deepEqual(t, key, "1")
}

func TestUpdateMergesShallowly(t *testing.T) {
	db := setup(t)

	ensure(t, db.Insert("2", Record{
		"name": String("Alice"),
		"age":  Int(30),
		"city": String("LA"),
		"addr": Map(map[string]Value{"street": String("1st"), "zip": String("90001")}),
	}))
	ensure(t, db.Update("2", Record{
		"age":  Int(31),
		"city": String("SF"),
		"addr": Map(map[string]Value{"street": String("2nd")}),
	}))

	got, _, err := db.Get("2")
	ensure(t, err)
	deepEqual(t, got, Record{
		"name": String("Alice"),
		"age":  Int(31),
		"city": String("SF"),
		// Nested mappings are replaced wholesale, not merged.
		"addr": Map(map[string]Value{"street": String("2nd")}),
	})
}

func TestUpdateAndDeleteMissingKeyAreNoops(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))

	ensure(t, db.Update("404", Record{"name": String("Ghost")}))
	ensure(t, db.Delete("404"))

	_, found, err := db.Get("404")
	ensure(t, err)
	if found {
		t.Errorf("update created a record under an absent key")
	}
	deepEqual(t, must(db.Len()), 1)
}

func TestDelete(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))
	ensure(t, db.Delete("1"))

	_, found, err := db.Get("1")
	ensure(t, err)
	if found {
		t.Errorf("record still present after delete")
	}
}

func TestClearThenQuery(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))
	ensure(t, db.Insert("2", Record{"name": String("Alice")}))
	ensure(t, db.Clear())

	result := must(db.Query(nil, nil))
	deepEqual(t, result, map[string]Record{})
}

func TestQueryNoPredicatesReturnsAll(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))
	ensure(t, db.Insert("2", Record{"name": String("Alice")}))

	result := must(db.Query(nil, nil))
	deepEqual(t, result, map[string]Record{
		"1": {"name": String("John")},
		"2": {"name": String("Alice")},
	})
}

func TestQueryProjection(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John"), "age": Int(25), "city": String("NY")}))
	ensure(t, db.Insert("2", Record{"name": String("Alice"), "age": Int(31), "city": String("SF")}))

	result := must(db.Query(
		[]Predicate{GreaterThan("age", Int(30))},
		[]string{"name", "city"},
	))
	deepEqual(t, result, map[string]Record{
		"2": {"name": String("Alice"), "city": String("SF")},
	})
}

func TestQueryProjectionOmitsAbsentColumns(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))

	result := must(db.Query(nil, []string{"name", "salary"}))
	deepEqual(t, result, map[string]Record{
		"1": {"name": String("John")},
	})
}

func TestQueryPredicatesAreConjunctive(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John"), "age": Int(25)}))
	ensure(t, db.Insert("2", Record{"name": String("Alice"), "age": Int(31)}))
	ensure(t, db.Insert("3", Record{"name": String("Anna"), "age": Int(40)}))

	result := must(db.Query([]Predicate{
		GreaterThan("age", Int(30)),
		Wildcard("name", "A*"),
		Contains("name", String("nn")),
	}, nil))
	deepEqual(t, result, map[string]Record{
		"3": {"name": String("Anna"), "age": Int(40)},
	})
}

func TestQueryBadPatternAbortsWholeQuery(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))
	ensure(t, db.Insert("2", Record{"name": String("Alice")}))

	_, err := db.Query([]Predicate{Wildcard("name", "[")}, nil)
	var perr *PatternError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, wanted a PatternError", err)
	}
	deepEqual(t, perr.Column, "name")
}

func TestKeysAndLen(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("b", Record{}))
	ensure(t, db.Insert("a", Record{}))
	ensure(t, db.Insert("10", Record{}))

	deepEqual(t, must(db.Keys()), []string{"10", "a", "b"})
	deepEqual(t, must(db.Len()), 3)
	deepEqual(t, must(db.Has("a")), true)
	deepEqual(t, must(db.Has("z")), false)
}

func TestPersistsAcrossHandles(t *testing.T) {
	db := setup(t)
	ensure(t, db.Insert("1", Record{"name": String("John")}))

	db2 := must(Open(db.Path(), Options{NoSync: true}))
	got, found, err := db2.Get("1")
	ensure(t, err)
	if !found {
		t.Fatalf("record lost after reopening the file")
	}
	deepEqual(t, got, Record{"name": String("John")})
}

func TestOpenMemory(t *testing.T) {
	db := OpenMemory(Options{Logf: t.Logf})
	ensure(t, db.Insert("1", Record{"name": String("John")}))
	key := must(db.New(Record{"name": String("Alice")}))
	deepEqual(t, key, "2")

	result := must(db.Query([]Predicate{Equals("name", String("Alice"))}, nil))
	deepEqual(t, result, map[string]Record{
		"2": {"name": String("Alice")},
	})
}

func TestOpenFailsOnUnreadablePath(t *testing.T) {
	_, err := Open("/nonexistent-dir/shelf.db", Options{})
	var serr *StoreError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, wanted a StoreError", err)
	}
}

func setup(t testing.TB) *DB {
	t.Helper()

	dbFile := must(os.CreateTemp("", "shelfdb_test_*.db"))
	t.Logf("DB: %s", dbFile.Name())
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	return must(Open(dbFile.Name(), Options{
		NoSync: true,
		Logf:   t.Logf,
	}))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func ensure(t testing.TB, err error) {
	if err != nil {
		t.Helper()
		t.Fatalf("** %v", err)
	}
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}
