package shelfdb

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() Record {
	return Record{
		"name":   String("John"),
		"age":    Int(25),
		"score":  Float(7.5),
		"active": Bool(true),
		"note":   Null(),
		"tags":   List(String("a"), Int(2), Bool(false)),
		"addr": Map(map[string]Value{
			"city": String("New York"),
			"geo":  List(Float(40.7), Float(-74.0)),
		}),
	}
}

func TestRecordMsgpackRoundTrip(t *testing.T) {
	rec := sampleRecord()

	data, err := encodeRecord(rec)
	require.NoError(t, err)

	got, err := decodeRecord("1", data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestRecordMsgpackEncodingIsDeterministic(t *testing.T) {
	a, err := encodeRecord(sampleRecord())
	require.NoError(t, err)
	b, err := encodeRecord(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEmptyRecordRoundTrip(t *testing.T) {
	data, err := encodeRecord(Record{})
	require.NoError(t, err)

	got, err := decodeRecord("1", data)
	require.NoError(t, err)
	assert.Equal(t, Record{}, got)
}

func TestDecodeRecordRejectsGarbage(t *testing.T) {
	_, err := decodeRecord("1", []byte{0xc1, 0xff})
	var rerr *RecordError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "1", rerr.Key)

	// A valid msgpack value that is not a map is still not a record.
	_, err = decodeRecord("2", []byte{0x2a}) // fixint 42
	require.True(t, errors.As(err, &rerr))
}

func TestValueJSONRoundTrip(t *testing.T) {
	rec := sampleRecord()

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var got Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rec, got)
}

func TestValueJSONShapes(t *testing.T) {
	data, err := json.Marshal(Record{
		"name": String("John"),
		"age":  Int(25),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"John","age":25}`, string(data))
}

func TestValueJSONNumberKinds(t *testing.T) {
	var v Value
	require.NoError(t, json.Unmarshal([]byte(`25`), &v))
	assert.Equal(t, Int(25), v)

	require.NoError(t, json.Unmarshal([]byte(`2.5`), &v))
	assert.Equal(t, Float(2.5), v)

	require.NoError(t, json.Unmarshal([]byte(`2e3`), &v))
	assert.Equal(t, Float(2000), v)
}
