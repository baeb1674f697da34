package layout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWriteSingleRecord(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, enc.Write(tick{ID: 42, Value: 7}, &buf, LittleEndian))
	require.Equal(t, enc.Size(), buf.Len())

	v, err := enc.Read(&buf, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, tick{ID: 42, Value: 7}, v)
}

func TestReadFailsOnShortStream(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	_, err = enc.Read(bytes.NewReader(nil), LittleEndian)
	assert.ErrorIs(t, err, ErrEndOfStream)

	_, err = enc.Read(bytes.NewReader(make([]byte, enc.Size()-1)), LittleEndian)
	assert.ErrorIs(t, err, ErrEndOfStream)
}

func TestWriteFailureLeavesStreamUntouched(t *testing.T) {
	enc, err := NewRegistry().Derive(Blob{Size: 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = enc.Write([]byte{1, 2}, &buf, LittleEndian)
	require.ErrorIs(t, err, ErrSize)
	assert.Zero(t, buf.Len())
}

func TestReadManyExactCount(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	ticks := []any{
		tick{ID: 1, Value: 10},
		tick{ID: 2, Value: 20},
		tick{ID: 3, Value: 30},
	}
	var buf bytes.Buffer
	require.NoError(t, enc.WriteMany(ticks, &buf, LittleEndian))
	require.Equal(t, 3*enc.Size(), buf.Len())

	got, err := enc.ReadMany(&buf, 3, LittleEndian).Collect()
	require.NoError(t, err)
	assert.Equal(t, ticks, got)
	assert.Zero(t, buf.Len())
}

func TestReadManyFailsWhenStreamRunsOut(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	var buf bytes.Buffer
	for i := 1; i <= 3; i++ {
		require.NoError(t, enc.Write(tick{ID: uint64(i)}, &buf, LittleEndian))
	}

	cur := enc.ReadMany(&buf, 4, LittleEndian)
	seen := 0
	for cur.Next() {
		seen++
	}
	assert.Equal(t, 3, seen)
	assert.ErrorIs(t, cur.Err(), ErrEndOfStream)
}

func TestReadManyZeroAndNegativeCounts(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	got, err := enc.ReadMany(bytes.NewReader(nil), 0, LittleEndian).Collect()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = enc.ReadMany(bytes.NewReader(nil), -1, LittleEndian).Collect()
	assert.ErrorIs(t, err, ErrValue)
}

func TestReadManyLeavesTrailingBytes(t *testing.T) {
	enc, err := NewRegistry().Derive(Blob{Size: 2})
	require.NoError(t, err)

	r := bytes.NewReader([]byte{1, 2, 3, 4, 5, 6})
	got, err := enc.ReadMany(r, 2, LittleEndian).Collect()
	require.NoError(t, err)
	assert.Equal(t, []any{[]byte{1, 2}, []byte{3, 4}}, got)
	assert.Equal(t, 2, r.Len())
}

func TestDecodeAll(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	ticks := []any{
		tick{ID: 5, Value: -5},
		tick{ID: 6, Value: -6},
	}
	var buf bytes.Buffer
	require.NoError(t, enc.WriteMany(ticks, &buf, BigEndian))

	cur, err := enc.DecodeAll(buf.Bytes(), BigEndian)
	require.NoError(t, err)
	got, err := cur.Collect()
	require.NoError(t, err)
	assert.Equal(t, ticks, got)
}

func TestDecodeAllRejectsPartialRecords(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	_, err = enc.DecodeAll(make([]byte, enc.Size()*2+1), LittleEndian)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	cur, err := enc.DecodeAll(nil, LittleEndian)
	require.NoError(t, err)
	got, err := cur.Collect()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCursorStopsAtFirstDecodeError(t *testing.T) {
	enc, err := NewRegistry().Derive(Bool)
	require.NoError(t, err)

	cur, err := enc.DecodeAll([]byte{1, 0, 2, 1}, LittleEndian)
	require.NoError(t, err)

	seen := 0
	for cur.Next() {
		seen++
	}
	assert.Equal(t, 2, seen)
	assert.ErrorIs(t, cur.Err(), ErrValue)

	// A stopped cursor stays stopped.
	assert.False(t, cur.Next())
}
