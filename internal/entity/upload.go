package entity

import "github.com/google/uuid"

// UploadedFile is the transient handoff from upload intake to the pipeline:
// one staged image plus its original client-side name and the uploading
// employee. It is not retained beyond the pipeline run.
type UploadedFile struct {
	OriginalName string
	StoragePath  string
	EmployeeID   *uuid.UUID
}
