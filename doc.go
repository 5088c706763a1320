/*
Package shelfdb implements an embedded, file-backed document store: a
persistent mapping from string keys to schema-free records (string-keyed
attribute maps), with CRUD operations and an in-process predicate/projection
query engine.

We implement:

1. A storage engine with insert, update (shallow merge), delete and clear,
each running as one scoped open→mutate→flush→close cycle against the
backing file.

2. Automatic key allocation: New derives the next unique numeric-string key
by scanning existing keys (arbitrary precision, so allocation never
overflows).

3. A query engine: composable column predicates combined as a logical AND,
with optional column projection over the surviving records.

# Technical Details

**Backing store.**
Records live in a single bucket of one Bolt file, encoded as plain msgpack
documents. The file is opened and closed per operation; Bolt's commit is the
durability flush, and its file lock is the only serialization between
processes.

**Values.**
Record attributes use a tagged-variant Value type (null, bool, int, float,
string, list, nested map) with an explicit Kind discriminant rather than
interface{} plumbing. Values round-trip through msgpack for persistence and
through natural-form JSON at tool boundaries.

**Predicates.**
Every predicate gates on the column value being present and truthy before
comparing, so records holding 0, false, "" or an empty collection in the
tested column never match. See Predicate for the consequences.

**Scans.**
There are no indexes; every query reads every record. The store targets
single-process applications with modest data, not query throughput.
*/
package shelfdb
