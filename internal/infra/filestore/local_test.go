//go:build unit

package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	root := t.TempDir()
	s := newLocalStore(root)
	ctx := context.Background()

	ref, err := s.Save(ctx, "ticket_7.pdf", []byte("%PDF-1.3 first"))
	require.NoError(t, err)
	assert.Equal(t, "tickets/ticket_7.pdf", ref)

	onDisk, err := os.ReadFile(filepath.Join(root, "tickets", "ticket_7.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 first", string(onDisk))

	_, err = s.Save(ctx, "ticket_7.pdf", []byte("%PDF-1.3 second"))
	require.NoError(t, err)
	data, err := s.Open(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 second", string(data), "save overwrites")

	entries, err := os.ReadDir(filepath.Join(root, "tickets"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	exists, err := s.Exists(ctx, ref)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, ref))
	exists, err = s.Exists(ctx, ref)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, s.Delete(ctx, ref), "deleting twice is fine")
}

func TestLocalStoreMissingDocument(t *testing.T) {
	s := newLocalStore(t.TempDir())

	_, err := s.Open(context.Background(), "tickets/ticket_404.pdf")
	assert.True(t, errs.Is(err, shared.ErrDocumentMissing))
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestLocalStoreRejectsBadReferences(t *testing.T) {
	s := newLocalStore(t.TempDir())
	ctx := context.Background()

	for _, ref := range []string{"", "../secret", "tickets/../../etc/passwd", "other/ticket_1.pdf", "tickets"} {
		t.Run(ref, func(t *testing.T) {
			_, err := s.Open(ctx, ref)
			assert.True(t, errs.Is(err, ErrInvalidReference))
		})
	}

	for _, name := range []string{"", "..", "a/b.pdf", `a\b.pdf`} {
		t.Run("save "+name, func(t *testing.T) {
			_, err := s.Save(ctx, name, []byte("x"))
			assert.True(t, errs.Is(err, ErrInvalidReference))
		})
	}
}
