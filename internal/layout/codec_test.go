package layout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedCodecRoundTrip(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)
	ticks := As[tick](enc)
	require.Equal(t, 12, ticks.Size())
	assert.Same(t, enc, ticks.Encoding())

	data, err := ticks.Encode(tick{ID: 9, Value: -9}, LittleEndian)
	require.NoError(t, err)
	got, err := ticks.Decode(data, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, tick{ID: 9, Value: -9}, got)
}

func TestTypedCodecRejectsForeignValues(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)

	// The encoding decodes to tick; a codec for another type must refuse it.
	strings := As[string](enc)
	data, err := enc.Encode(tick{ID: 1}, LittleEndian)
	require.NoError(t, err)
	_, err = strings.Decode(data, LittleEndian)
	assert.ErrorIs(t, err, ErrValue)
}

func TestTypedCodecReadManyCounts(t *testing.T) {
	enc, err := NewRegistry().Derive(U8)
	require.NoError(t, err)
	codec := As[uint8](enc)

	got, err := codec.ReadMany(bytes.NewReader([]byte{1, 2}), 2, LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2}, got)

	got, err = codec.ReadMany(bytes.NewReader(nil), 0, LittleEndian)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = codec.ReadMany(bytes.NewReader(nil), -1, LittleEndian)
	assert.ErrorIs(t, err, ErrValue)
}

func TestTypedCodecStreams(t *testing.T) {
	enc, err := NewRegistry().Derive(tickDesc())
	require.NoError(t, err)
	ticks := As[tick](enc)

	in := []tick{
		{ID: 1, Value: 1},
		{ID: 2, Value: 2},
		{ID: 3, Value: 3},
	}
	var buf bytes.Buffer
	require.NoError(t, ticks.WriteMany(in, &buf, BigEndian))
	require.Equal(t, 3*enc.Size(), buf.Len())

	out, err := ticks.ReadMany(&buf, 3, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, ticks.Write(in[0], &buf, BigEndian))
	one, err := ticks.Read(&buf, BigEndian)
	require.NoError(t, err)
	assert.Equal(t, in[0], one)

	_, err = ticks.ReadMany(&buf, 2, BigEndian)
	assert.ErrorIs(t, err, ErrEndOfStream)
}
