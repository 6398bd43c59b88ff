package clipboard

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFiles(t *testing.T) {
	out := "TEMP\tC:\\Users\\a\\AppData\\Local\\Temp\\\r\n" +
		"FILE\tC:\\one.txt\r\n" +
		"\r\n" +
		"FILE\tD:\\dir with spaces\\two.txt\r\n"

	state, err := parseOutput([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, `C:\Users\a\AppData\Local\Temp\`, state.TempDir)
	assert.Equal(t, []string{`C:\one.txt`, `D:\dir with spaces\two.txt`}, state.Files)
	assert.Nil(t, state.Image)
}

func TestParseOutputImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	out := "TEMP\tC:\\Temp\\\nIMAGE\t" + base64.StdEncoding.EncodeToString(payload) + "\n"

	state, err := parseOutput([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, payload, state.Image)
	assert.Empty(t, state.Files)
}

func TestParseOutputEmpty(t *testing.T) {
	state, err := parseOutput(nil)
	require.NoError(t, err)
	assert.Empty(t, state.TempDir)
	assert.Empty(t, state.Files)
}

func TestParseOutputErrors(t *testing.T) {
	tests := map[string]string{
		"missing tab": "C:\\no-tag.txt\n",
		"unknown tag": "DIR\tC:\\x\n",
		"bad base64":  "IMAGE\t!!!\n",
	}
	for name, out := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseOutput([]byte(out))
			assert.Error(t, err)
		})
	}
}
