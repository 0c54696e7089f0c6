package ingest

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func multipartFiles(t *testing.T, names map[string][]byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range names {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func TestStageCopiesFilesAndBuildsTuples(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "staging")
	intake := NewIntake(dir, nil)
	eid := uuid.New()

	files := multipartFiles(t, map[string][]byte{"card.jpg": []byte("jpeg-bytes")})
	staged, err := intake.Stage(files, &eid)
	require.NoError(t, err)
	require.Len(t, staged, 1)

	require.Equal(t, "card.jpg", staged[0].OriginalName)
	require.Equal(t, &eid, staged[0].EmployeeID)

	content, err := os.ReadFile(staged[0].StoragePath)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), content)
	// Staged under the staging dir, not the original name verbatim.
	require.Equal(t, dir, filepath.Dir(staged[0].StoragePath))
	require.NotEqual(t, "card.jpg", filepath.Base(staged[0].StoragePath))
}

func TestStageStripsPathSegments(t *testing.T) {
	intake := NewIntake(t.TempDir(), nil)

	files := multipartFiles(t, map[string][]byte{"../../etc/card.png": []byte("x")})
	staged, err := intake.Stage(files, nil)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	require.Equal(t, "card.png", staged[0].OriginalName)
}

func TestCleanupRemovesStagedFiles(t *testing.T) {
	intake := NewIntake(t.TempDir(), nil)

	files := multipartFiles(t, map[string][]byte{"a.jpg": []byte("x"), "b.jpg": []byte("y")})
	staged, err := intake.Stage(files, nil)
	require.NoError(t, err)

	Cleanup(staged, nil)
	for _, f := range staged {
		_, err := os.Stat(f.StoragePath)
		require.True(t, os.IsNotExist(err))
	}
}
