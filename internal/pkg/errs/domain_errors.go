package errs

// Error categories shared across layers. Use-case sentinels carry one of these
// so the HTTP layer can map them without knowing every sentinel.
var (
	// ErrValidation: bad input shape or format (400)
	ErrValidation = New("validation failed")
	// ErrNotFound: a referenced entity does not exist (404)
	ErrNotFound = New("not found")
	// ErrConflict: a uniqueness rule was violated (409)
	ErrConflict = New("conflict")
	// ErrGeneration: the ticket document pipeline failed (500, rolls back)
	ErrGeneration = New("document generation failed")
	// ErrTransport: notification delivery failed (never fatal)
	ErrTransport = New("transport failure")
)

type kindedError struct {
	msg      string
	category error
}

func (e *kindedError) Error() string { return e.msg }

func (e *kindedError) Is(target error) bool { return target == e.category }

// Kinded returns a new sentinel belonging to the given category. Distinct
// sentinels of one category stay distinguishable under Is.
func Kinded(msg string, category error) error {
	return &kindedError{msg: msg, category: category}
}

// CategoryOf returns the category err belongs to, or nil.
func CategoryOf(err error) error {
	for _, c := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrGeneration, ErrTransport} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
