package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/varlopecar/react-form/frontend/apiclient"
)

var _ apiclient.TokenStore = (*File)(nil)

func newTestFile(t *testing.T) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	return f, path
}

func TestFileStore(t *testing.T) {
	f, path := newTestFile(t)

	value, err := f.Get(apiclient.TokenKey)
	require.NoError(t, err)
	assert.Empty(t, value, "missing file reads as empty")

	require.NoError(t, f.Set(apiclient.TokenKey, "tok"))
	require.NoError(t, f.Set(apiclient.RegistrationKey, `{"firstName":"Jean"}`))

	// a second handle on the same path sees the writes
	other, err := NewFile(path)
	require.NoError(t, err)
	value, err = other.Get(apiclient.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", value)

	require.NoError(t, other.Delete(apiclient.TokenKey))
	value, err = f.Get(apiclient.TokenKey)
	require.NoError(t, err)
	assert.Empty(t, value)
	value, err = f.Get(apiclient.RegistrationKey)
	require.NoError(t, err)
	assert.Equal(t, `{"firstName":"Jean"}`, value)

	require.NoError(t, f.Delete("never-set"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorrupted(t *testing.T) {
	f, path := newTestFile(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := f.Get(apiclient.TokenKey)
	assert.Error(t, err)
}

func TestFileStoreConcurrentWriters(t *testing.T) {
	f, path := newTestFile(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store, err := NewFile(path)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, store.Set(fmt.Sprintf("key-%d", i), "v"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		value, err := f.Get(fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		assert.Equal(t, "v", value)
	}
}
