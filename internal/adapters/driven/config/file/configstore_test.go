package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	assert.Equal(t, filepath.Join(nested, ConfigFileName), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("not toml {{[["), 0o600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("s", "hello"))
	require.NoError(t, store.Set("i", 42))
	require.NoError(t, store.Set("f", 0.85))
	require.NoError(t, store.Set("b", true))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("s"), "hello"},
		{"int", store.GetInt("i"), 42},
		{"float", store.GetFloat("f"), 0.85},
		{"int widened to float", store.GetFloat("i"), 42.0},
		{"bool", store.GetBool("b"), true},
		{"string wrong type", store.GetString("i"), ""},
		{"int wrong type", store.GetInt("s"), 0},
		{"float wrong type", store.GetFloat("s"), 0.0},
		{"bool wrong type", store.GetBool("s"), false},
		{"missing string", store.GetString("missing"), ""},
		{"missing int", store.GetInt("missing"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("match.tabular_threshold", 75))
	require.NoError(t, store.Set("match.short_circuit_confidence", 0.9))
	require.NoError(t, store.Set("data.dir", "/srv/medicines"))
	require.NoError(t, store.Set("history.enabled", false))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[match]")
	assert.Contains(t, string(raw), "tabular_threshold = 75")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 75, reloaded.GetInt("match.tabular_threshold"))
	assert.InDelta(t, 0.9, reloaded.GetFloat("match.short_circuit_confidence"), 1e-9)
	assert.Equal(t, "/srv/medicines", reloaded.GetString("data.dir"))
	_, ok := reloaded.Get("history.enabled")
	assert.True(t, ok)
	assert.False(t, reloaded.GetBool("history.enabled"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[match]
tabular_threshold = 80
document_threshold = 55

[ocr]
medicine_threshold = 0.4
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 80, store.GetInt("match.tabular_threshold"))
	assert.Equal(t, 55, store.GetInt("match.document_threshold"))
	assert.InDelta(t, 0.4, store.GetFloat("ocr.medicine_threshold"), 1e-9)
}

func TestConfigStore_EmptyAndCommentOnlyFiles(t *testing.T) {
	for name, content := range map[string]string{
		"empty":        "",
		"comment only": "# nothing here\n\n",
	} {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0o600))

			store, err := NewConfigStore(tmpDir)
			require.NoError(t, err)

			_, ok := store.Get("any")
			assert.False(t, ok)
		})
	}
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0o700))

	assert.Error(t, store.Save())
}

func TestConfigStore_SetUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "match.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
		}(i)
	}
	wg.Wait()
}

func TestNestMap(t *testing.T) {
	tests := []struct {
		name string
		flat map[string]any
		want map[string]any
	}{
		{
			name: "flat key",
			flat: map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name: "dotted keys share a table",
			flat: map[string]any{"m.x": 1, "m.y": 2},
			want: map[string]any{"m": map[string]any{"x": 1, "y": 2}},
		},
		{
			name: "deep key",
			flat: map[string]any{"a.b.c": true},
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": true}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nestMap(tt.flat))
		})
	}
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"match": map[string]any{"tabular_threshold": int64(70)},
		"top":   "v",
	}

	assert.Equal(t, map[string]any{
		"match.tabular_threshold": int64(70),
		"top":                     "v",
	}, flattenMap(nested, ""))
}
