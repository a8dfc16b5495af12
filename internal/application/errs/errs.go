package errs

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (t ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %v: %v", t.Field, t.Message)
}

// ConflictError reports a uniqueness conflict on a slug or custom domain.
// Title names the colliding website when it is known.
type ConflictError struct {
	Resource string
	Title    string
}

func (t ConflictError) Error() string {
	if t.Title != "" {
		return fmt.Sprintf("%v already exists, held by %q", t.Resource, t.Title)
	}
	return fmt.Sprintf("%v already exists", t.Resource)
}

type NotFoundError struct {
	Resource string
}

func (t NotFoundError) Error() string {
	return fmt.Sprintf("%v not found", t.Resource)
}

type PermissionsError struct {
	Err error
}

func (t PermissionsError) Error() string {
	return fmt.Sprintf("error in permissions: %v", t.Err)
}

type ProviderErrorKind string

const (
	ProviderAlreadyAssigned ProviderErrorKind = "already_assigned"
	ProviderUnreachable     ProviderErrorKind = "unreachable"
	ProviderInvalidDomain   ProviderErrorKind = "invalid_domain"
)

// ProviderError wraps a failure of the external edge-domain API.
// AlreadyAssigned needs different user guidance than a transient failure,
// so callers branch on Kind.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (t ProviderError) Error() string {
	return fmt.Sprintf("provider error (%v): %v", t.Kind, t.Err)
}

func (t ProviderError) Unwrap() error {
	return t.Err
}

type ConfigurationError struct {
	Message string
}

func (t ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", t.Message)
}
