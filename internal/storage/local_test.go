package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Resolve(t *testing.T) {
	root := t.TempDir()
	local, err := NewLocal(root)
	require.NoError(t, err)

	tests := []struct {
		name       string
		publicPath string
		want       string
		wantErr    bool
	}{
		{name: "public path", publicPath: "/generated/certificate_1.pdf", want: filepath.Join(root, "certificate_1.pdf")},
		{name: "bare name", publicPath: "certificate_1.pdf", want: filepath.Join(root, "certificate_1.pdf")},
		{name: "traversal", publicPath: "/generated/../secret", wantErr: true},
		{name: "nested", publicPath: "/generated/a/b.pdf", wantErr: true},
		{name: "empty", publicPath: "/generated/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := local.Resolve(tt.publicPath)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocal_ExistsAndRemove(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	public := local.PublicPath("certificate_x.pdf")
	assert.Equal(t, "/generated/certificate_x.pdf", public)
	assert.False(t, local.Exists(public))

	require.NoError(t, os.WriteFile(local.Path("certificate_x.pdf"), []byte("%PDF"), 0o644))
	assert.True(t, local.Exists(public))

	require.NoError(t, local.Remove(public))
	assert.False(t, local.Exists(public))
	assert.NoError(t, local.Remove(public), "removing a missing file is not an error")
}

func TestLocal_CreateUnique(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	name := func(seq int64) string { return "bulk_" + strconv.FormatInt(seq, 10) + ".zip" }

	first, firstName, err := local.CreateUnique(name, 100)
	require.NoError(t, err)
	defer first.Close()
	second, secondName, err := local.CreateUnique(name, 100)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, "bulk_100.zip", firstName)
	assert.Equal(t, "bulk_101.zip", secondName)
}

func TestNewLocal_CreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "generated")

	_, err := NewLocal(root)

	require.NoError(t, err)
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
