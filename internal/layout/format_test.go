package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFormat(t *testing.T) {
	reg := NewRegistry()
	derive := func(d Descriptor) *Encoding {
		enc, err := reg.Derive(d)
		require.NoError(t, err)
		return enc
	}

	format, err := CompileFormat(
		derive(U8), derive(I8),
		derive(U16), derive(I16),
		derive(U32), derive(I32),
		derive(U64), derive(I64),
		derive(Blob{Size: 16}),
	)
	require.NoError(t, err)
	assert.Equal(t, "BbHhIiQq16s", format)

	format, err = CompileFormat(derive(Bool), derive(F16), derive(F32), derive(F64))
	require.NoError(t, err)
	assert.Equal(t, "?efd", format)

	format, err = CompileFormat()
	require.NoError(t, err)
	assert.Empty(t, format)
}

func TestCompileFormatRejectsNonNativeEncodings(t *testing.T) {
	reg := NewRegistry()
	derive := func(d Descriptor) *Encoding {
		enc, err := reg.Derive(d)
		require.NoError(t, err)
		return enc
	}

	cases := []struct {
		name string
		enc  *Encoding
	}{
		{"wide integer", derive(U128)},
		{"padded text", derive(Text{Size: 8})},
		{"fixed point decimal", I80F48},
		{"enum", derive(suitDesc())},
		{"record", derive(tickDesc())},
		{"nil encoding", nil},
	}
	for _, c := range cases {
		_, err := CompileFormat(c.enc)
		assert.ErrorIs(t, err, ErrUnsupported, c.name)
	}

	// One unsupported element poisons the whole sequence.
	_, err := CompileFormat(derive(U8), derive(U128))
	assert.ErrorIs(t, err, ErrUnsupported)
}
