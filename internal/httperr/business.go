package httperr

import "errors"

type Kind string

const (
	KindBusiness   Kind = "business"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindGenerative Kind = "generative"
	KindAuth       Kind = "auth"
)

type BusinessError struct {
	Code string
	Kind Kind
	Err  error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindBusiness}
}

// ErrValidation is raised before any remote call when a required form
// field is missing or malformed.
func ErrValidation(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrNotFound(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

func ErrForbidden(code string) error {
	return BusinessError{Code: code, Kind: KindForbidden}
}

func ErrAuth(code string) error {
	return BusinessError{Code: code, Kind: KindAuth}
}

func ErrGenerative(code string, cause error) error {
	return BusinessError{Code: code, Kind: KindGenerative, Err: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
