package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"cardvault/internal/entity"
)

// Intake stages a multipart upload set to the local filesystem and hands the
// resulting tuples to the pipeline. Staged files live only for the duration
// of one batch.
type Intake struct {
	Dir    string
	Logger *slog.Logger
}

func NewIntake(dir string, logger *slog.Logger) *Intake {
	if logger == nil {
		logger = slog.Default()
	}
	return &Intake{Dir: dir, Logger: logger}
}

// Stage copies each part to the staging directory under a uuid-prefixed name
// (originals may collide or carry hostile path segments) and returns the
// UploadedFile tuples for the orchestrator.
func (i *Intake) Stage(files []*multipart.FileHeader, employeeID *uuid.UUID) ([]entity.UploadedFile, error) {
	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}

	var out []entity.UploadedFile
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		staged := filepath.Join(i.Dir, uuid.New().String()+"_"+name)

		if err := saveTo(fh, staged); err != nil {
			Cleanup(out, i.Logger)
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		i.Logger.Info("ingest.staged", "file", name, "path", staged)

		out = append(out, entity.UploadedFile{
			OriginalName: name,
			StoragePath:  staged,
			EmployeeID:   employeeID,
		})
	}
	return out, nil
}

// Cleanup removes staged files after a batch; failures are logged only.
func Cleanup(files []entity.UploadedFile, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, f := range files {
		if err := os.Remove(f.StoragePath); err != nil {
			logger.Warn("ingest.cleanup_failed", "path", f.StoragePath, "error", err)
		}
	}
}

func saveTo(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return err
	}
	return out.Close()
}
