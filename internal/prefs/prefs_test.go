package prefs

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reviewaudio/internal/config"
	"github.com/llehouerou/reviewaudio/internal/db"
)

// openStores returns one store per backend, each backed by a temp file.
func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	boltStore, err := OpenBolt(filepath.Join(dir, "prefs.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { boltStore.Close() })

	return map[string]Store{
		BackendSQLite: sqliteStore,
		BackendBolt:   boltStore,
		BackendMemory: NewMemory(),
	}
}

func TestStore_GetMissingReturnsDefault(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, "1.0", s.GetString(KeyAudioPlaybackSpeed, "1.0"))
			assert.Empty(t, s.GetString(KeyAudioPlaybackSpeed, ""))
		})
	}
}

func TestStore_PutThenGet(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.PutString(KeyAudioPlaybackSpeed, "1.25"))
			assert.Equal(t, "1.25", s.GetString(KeyAudioPlaybackSpeed, "1.0"))

			// Last write wins
			require.NoError(t, s.PutString(KeyAudioPlaybackSpeed, "2.5"))
			assert.Equal(t, "2.5", s.GetString(KeyAudioPlaybackSpeed, "1.0"))
		})
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.PutString("a", "1"))
			require.NoError(t, s.PutString("b", "2"))
			assert.Equal(t, "1", s.GetString("a", ""))
			assert.Equal(t, "2", s.GetString("b", ""))
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.PutString(KeyAudioPlaybackSpeed, "0.5"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, "0.5", s.GetString(KeyAudioPlaybackSpeed, "1.0"))
}

func TestSQLite_MigratesSchema(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer s.Close()

	v, err := db.SchemaVersion(s.db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestBolt_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.bolt")

	b, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, b.PutString(KeyAudioPlaybackSpeed, "1.75"))
	require.NoError(t, b.Close())

	b, err = OpenBolt(path)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "1.75", b.GetString(KeyAudioPlaybackSpeed, "1.0"))
}

func TestMemory_PutError(t *testing.T) {
	m := NewMemory()
	boom := errors.New("disk full")
	m.SetPutError(boom)

	err := m.PutString(KeyAudioPlaybackSpeed, "2.0")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "1.0", m.GetString(KeyAudioPlaybackSpeed, "1.0"))
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.PrefsConfig
		want    any
		wantErr bool
	}{
		{"default is sqlite", config.PrefsConfig{Path: filepath.Join(dir, "a.db")}, &SQLite{}, false},
		{"sqlite", config.PrefsConfig{Backend: BackendSQLite, Path: filepath.Join(dir, "b.db")}, &SQLite{}, false},
		{"bolt", config.PrefsConfig{Backend: BackendBolt, Path: filepath.Join(dir, "c.bolt")}, &Bolt{}, false},
		{"memory", config.PrefsConfig{Backend: BackendMemory}, &Memory{}, false},
		{"unknown", config.PrefsConfig{Backend: "redis"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}
