package models

// The two fatal error kinds: filesystem failures and unparseable date
// tokens. Both wrap the underlying error and keep its detail in their
// display form.

type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "IOError: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

type FormatError struct {
	Token string
	Err   error
}

func (e *FormatError) Error() string {
	return "FormatError: invalid basic calendar date " + e.Token + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
