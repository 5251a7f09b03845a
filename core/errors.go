package core

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}

type ErrorMalformedID struct {
}

func (e ErrorMalformedID) Error() string {
	return "Malformed ID"
}

func NewErrorMalformedID() ErrorMalformedID {
	return ErrorMalformedID{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

// ErrorValidation carries the underlying constraint message so handlers
// can attach it to the response verbatim.
type ErrorValidation struct {
	Message string
}

func (e ErrorValidation) Error() string {
	return e.Message
}

func NewErrorValidation(message string) ErrorValidation {
	return ErrorValidation{Message: message}
}
