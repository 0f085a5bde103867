package errs

import "errors"

// Domain-specific sentinel errors shared by the stores and handlers
var (
	// Lookup errors
	ErrTemplateNotFound  = errors.New("template not found")
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrVersionNotFound   = errors.New("version not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrUserNotFound      = errors.New("user not found")

	// Validation errors
	ErrInvalidQuotation        = errors.New("invalid quotation")
	ErrInvalidTemplate         = errors.New("invalid template")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidEvent            = errors.New("invalid analytics event")
	ErrInvalidImport           = errors.New("invalid import payload")
	ErrInvalidCollaboration    = errors.New("invalid collaboration request")
	ErrUnsupportedFormat       = errors.New("unsupported export format")

	// Persistence errors
	ErrStorageWrite = errors.New("storage write failed")
)
