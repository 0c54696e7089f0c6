package pipeline

import "fmt"

// FailureKind tags where in the per-file pipeline a failure happened, so the
// orchestrator branches on one contract instead of one per stage. Provider
// unreachable (KindStructure) and provider returned garbage (KindParse) stay
// distinguishable.
type FailureKind string

const (
	KindOCR       FailureKind = "ocr_failed"
	KindStructure FailureKind = "structure_failed"
	KindParse     FailureKind = "parse_failed"
	KindPersist   FailureKind = "persist_failed"
)

// StageError wraps a stage failure with its kind and the file it belongs to.
// Any StageError is fatal for its file only, never for the batch.
type StageError struct {
	Kind FailureKind
	File string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.File, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
