package textenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestLookup(t *testing.T) {
	enc, err := Lookup("")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = Lookup("UTF-8")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = Lookup("windows-1251")
	require.NoError(t, err)
	assert.Equal(t, charmap.Windows1251, enc)

	_, err = Lookup("no-such-charset")
	assert.Error(t, err)
}

func TestToUTF8(t *testing.T) {
	got, err := ToUTF8([]byte{'c', 'a', 'f', 0xe9}, ForCodePage(1252))
	require.NoError(t, err)
	assert.Equal(t, "café", string(got))

	got, err = ToUTF8([]byte{0xcf, 0xf0, 0xe8}, ForCodePage(1251))
	require.NoError(t, err)
	assert.Equal(t, "При", string(got))

	got, err = ToUTF8([]byte("as is"), ForCodePage(65001))
	require.NoError(t, err)
	assert.Equal(t, "as is", string(got))
}

func TestForCodePageFallback(t *testing.T) {
	assert.Equal(t, charmap.Windows1252, ForCodePage(9999))
	assert.Equal(t, charmap.CodePage866, ForCodePage(866))
}

func TestToUTF16(t *testing.T) {
	assert.Equal(t, []byte{'h', 0, 'i', 0}, ToUTF16("hi"))
	assert.Equal(t, []byte{0xe9, 0}, ToUTF16("é"))
	assert.Equal(t, []byte{0x3d, 0xd8, 0x00, 0xde}, ToUTF16("😀"))
	assert.Empty(t, ToUTF16(""))
}
