package ledger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolcube/toolcube/internal/adapters/ledger"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"github.com/toolcube/toolcube/internal/core/domain"
)

func newStore() *ledger.Store {
	return ledger.NewStore(logger.New())
}

func TestStore_ReadMissingFile(t *testing.T) {
	l, err := newStore().Read(filepath.Join(t.TempDir(), ledger.FileName))
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestStore_RoundTrip(t *testing.T) {
	// Write creates missing parent directories.
	path := filepath.Join(t.TempDir(), "mytool", ledger.FileName)

	in := domain.Ledger{}
	in.Record("1.0.0", "/opt/tools/mytool/1.0.0")
	require.NoError(t, newStore().Write(path, in))

	out, err := newStore().Read(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/tools/mytool/1.0.0", out["1.0.0"])
	assert.Equal(t, "/opt/tools/mytool/1.0.0", out.Latest())
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ledger.FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := newStore().Read(path)
	assert.Error(t, err)
}
