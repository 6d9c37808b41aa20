package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupnet/coup/pkg/coup"
)

func TestFormatCards(t *testing.T) {
	assert.Equal(t, "none", FormatCards(nil))
	assert.Equal(t, "duke", FormatCards([]coup.Card{coup.Duke}))
	assert.Equal(t, "duke contessa duke",
		FormatCards([]coup.Card{coup.Duke, coup.Contessa, coup.Duke}))
}

func TestEnsureDataDirExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, EnsureDataDirExists(dir))

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
