package prefab

import "errors"

// Sentinel errors for document mutation, validation and decoding.
var (
	// ErrDuplicateID indicates an object id is already registered in the document.
	ErrDuplicateID = errors.New("duplicate object ID")
	// ErrUnknownID indicates an operation referenced an id the document does not hold.
	ErrUnknownID = errors.New("unknown object ID")
	// ErrCrossDocumentParent indicates a parent object belongs to a different document.
	ErrCrossDocumentParent = errors.New("parent belongs to a different document")
	// ErrForeignObject indicates an object is already owned by another document.
	ErrForeignObject = errors.New("object belongs to another document")
	// ErrEmptyTimeline indicates a channel timeline holds no keyframes.
	ErrEmptyTimeline = errors.New("timeline has no keyframes")
	// ErrMissingField indicates a required field (name, id, text) is empty or absent.
	ErrMissingField = errors.New("required field missing")
	// ErrUnknownEasing indicates an easing value or name outside the known curves.
	ErrUnknownEasing = errors.New("unknown easing")
	// ErrDanglingParent indicates a parent id that no object in the document carries.
	ErrDanglingParent = errors.New("parent reference does not resolve")
	// ErrParentCycle indicates a parent chain that leads back to its start.
	ErrParentCycle = errors.New("parent cycle detected")
	// ErrMalformedNumber indicates a non-numeric literal where a number is expected.
	ErrMalformedNumber = errors.New("malformed numeric literal")
	// ErrInvalidEnum indicates an enum value or name outside its table.
	ErrInvalidEnum = errors.New("invalid enum value")
	// ErrNegativeTime indicates a keyframe time below zero.
	ErrNegativeTime = errors.New("keyframe time must be >= 0")
	// ErrRestKeyframe indicates an attempt to remove the time-zero keyframe.
	ErrRestKeyframe = errors.New("time-zero keyframe cannot be removed")
	// ErrEmptyDocument indicates a document without objects.
	ErrEmptyDocument = errors.New("prefab has no objects")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMissingField    ValidationCategory = "missing_field"
	ValCatDuplicateID     ValidationCategory = "duplicate_id"
	ValCatEmptyDocument   ValidationCategory = "empty_document"
	ValCatEmptyTimeline   ValidationCategory = "empty_timeline"
	ValCatInvalidEnum     ValidationCategory = "invalid_enum"
	ValCatBoundsViolation ValidationCategory = "bounds_violation"
	ValCatDanglingParent  ValidationCategory = "dangling_parent"
	ValCatCycle           ValidationCategory = "cycle"
)

// ValidationError records a validation problem with the offending object and field.
type ValidationError struct {
	Category ValidationCategory
	ObjectID string // empty for document-level problems
	Field    string
	Err      error
}

// Error returns a human-readable string including object and field context.
func (e *ValidationError) Error() string {
	msg := e.Err.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.ObjectID != "" {
		return "object " + e.ObjectID + ": " + msg
	}
	return "prefab: " + msg
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
