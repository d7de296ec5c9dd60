package moderation

import "fmt"

// ValidationError indicates user-correctable input (missing mention, bad
// argument). The message is surfaced verbatim to the invoking channel.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given user-facing message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// InsufficientPrivilegeError indicates the platform rejected a punitive
// action, typically because of role hierarchy. It aborts the action.
type InsufficientPrivilegeError struct {
	Action string
	Cause  error
}

func (e *InsufficientPrivilegeError) Error() string {
	return fmt.Sprintf("cannot %s this user: %v", e.Action, e.Cause)
}

func (e *InsufficientPrivilegeError) Unwrap() error {
	return e.Cause
}

// NotificationDeliveryError indicates a direct message could not be delivered,
// usually because the user has DMs disabled. It degrades the result only.
type NotificationDeliveryError struct {
	UserID string
	Cause  error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("cannot notify user %s: %v", e.UserID, e.Cause)
}

func (e *NotificationDeliveryError) Unwrap() error {
	return e.Cause
}

// ResourceCreationError indicates a ticket channel could not be created.
// It is logged and recovered: the pipeline continues without a ticket.
type ResourceCreationError struct {
	Resource string
	Cause    error
}

func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("failed to create %s: %v", e.Resource, e.Cause)
}

func (e *ResourceCreationError) Unwrap() error {
	return e.Cause
}
