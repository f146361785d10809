package codec

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/stream"
)

func TestSnappy_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("hello")},
		{"repetitive", bytes.Repeat([]byte("abcdefgh"), 4096)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var compressed builder.Builder
			_, err := AppendSnappy(&compressed, tt.data)
			require.NoError(t, err)

			var out builder.Builder
			n, err := DecodeSnappy(&out, compressed.Bytes())
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), n)
			assert.Equal(t, string(tt.data), out.String())
		})
	}
}

func TestSnappy_Compresses(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 10000)

	var d stream.Discard
	n, err := AppendSnappy(&d, data)
	require.NoError(t, err)
	assert.Less(t, n, len(data)/10)
	assert.Equal(t, int64(n), d.Size())
}

func TestDecodeSnappy_Corrupt(t *testing.T) {
	var out builder.Builder
	_, err := DecodeSnappy(&out, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecodeSnappy_FixedFull(t *testing.T) {
	var compressed builder.Builder
	_, err := AppendSnappy(&compressed, []byte("0123456789"))
	require.NoError(t, err)

	out := builder.FromBytes(make([]byte, 4))
	n, err := DecodeSnappy(out, compressed.Bytes())
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, stream.ErrFull)
	assert.Equal(t, "0123", out.String())
}

func TestRecord_RoundTrip(t *testing.T) {
	var b builder.Builder
	first := []byte(strings.Repeat("first record ", 20))
	second := []byte("second")

	n1, err := AppendRecord(&b, first)
	require.NoError(t, err)
	n2, err := AppendRecord(&b, second)
	require.NoError(t, err)
	assert.Equal(t, n1+n2, b.Len())

	data, rest, err := ReadRecord(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, first, data)

	data, rest, err = ReadRecord(rest)
	require.NoError(t, err)
	assert.Equal(t, second, data)
	assert.Empty(t, rest)
}

func TestRecord_Corruption(t *testing.T) {
	var b builder.Builder
	_, err := AppendRecord(&b, []byte("payload"))
	require.NoError(t, err)
	rec := append([]byte(nil), b.Bytes()...)

	_, _, err = ReadRecord(rec[:RecordHeaderLen-1])
	assert.ErrorIs(t, err, ErrCorrupt)

	_, _, err = ReadRecord(rec[:len(rec)-1])
	assert.ErrorIs(t, err, ErrCorrupt)

	rec[len(rec)-1] ^= 0xff
	_, rest, err := ReadRecord(rec)
	assert.ErrorIs(t, err, ErrChecksum)
	assert.Equal(t, rec, rest)
}

func TestRecord_FixedIsAllOrNothing(t *testing.T) {
	b := builder.FromBytes(make([]byte, 12))
	b.AppendString("ab")

	n, err := AppendRecord(b, []byte("this payload will not fit"))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, stream.ErrFull)
	assert.Equal(t, "ab", b.String())
}

func TestFramedWriter(t *testing.T) {
	var b builder.Builder
	fw := NewFramedWriter(&b)

	payload := strings.Repeat("framed data ", 1000)
	n, err := fw.Write([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	require.NoError(t, fw.WriteByte('!'))
	assert.Equal(t, int64(len(payload)+1), fw.Size())

	require.NoError(t, fw.Close())
	assert.Less(t, b.Len(), len(payload))

	got, err := io.ReadAll(NewFramedReader(bytes.NewReader(b.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, payload+"!", string(got))
}

func TestFramedWriter_Destroy(t *testing.T) {
	b, err := builder.New(nil)
	require.NoError(t, err)

	fw := NewFramedWriter(b)
	_, err = fw.Write([]byte("data"))
	require.NoError(t, err)

	require.NoError(t, fw.Destroy())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
}
