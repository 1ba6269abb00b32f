package ecdsasig

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrPrivateKeyInvalid is returned when a private key is not a 32-byte
	// scalar in [1, n-1].
	ErrPrivateKeyInvalid = ErrorKind("ErrPrivateKeyInvalid")

	// ErrPublicKeyInvalid is returned when a public key is not a valid
	// compressed secp256k1 point.
	ErrPublicKeyInvalid = ErrorKind("ErrPublicKeyInvalid")

	// ErrSigInvalidLen is returned when a compact signature is not 65 bytes.
	ErrSigInvalidLen = ErrorKind("ErrSigInvalidLen")

	// ErrSigInvalidRecoveryParam is returned when the recovery parameter is
	// greater than 3.
	ErrSigInvalidRecoveryParam = ErrorKind("ErrSigInvalidRecoveryParam")

	// ErrRecoveryParamUnavailable is returned when the header byte does not
	// carry a recovery parameter, that is when header - 4 - 27 is negative.
	ErrRecoveryParamUnavailable = ErrorKind("ErrRecoveryParamUnavailable")

	// ErrSigScalarOutOfRange is returned when r or s is zero or not below the
	// group order.
	ErrSigScalarOutOfRange = ErrorKind("ErrSigScalarOutOfRange")

	// ErrRecoveryExhausted is returned when none of the four recovery
	// parameters reproduces the claimed public key.
	ErrRecoveryExhausted = ErrorKind("ErrRecoveryExhausted")

	// ErrFieldOverflow is returned when r + (i/2)·n does not fit in the field.
	ErrFieldOverflow = ErrorKind("ErrFieldOverflow")

	// ErrNoSquareRoot is returned when x³ + 7 has no square root, so no
	// point with the candidate x coordinate exists.
	ErrNoSquareRoot = ErrorKind("ErrNoSquareRoot")

	// ErrPointNotOnCurve is returned when a reconstructed point fails the
	// curve equation.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrPointAtInfinity is returned when a recovered point is the identity.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")

	// ErrRecoveryFailed is returned when the secp256k1 library rejects a
	// recovery that passed the coordinate checks.
	ErrRecoveryFailed = ErrorKind("ErrRecoveryFailed")

	// ErrSignatureMismatch is returned when a signature does not verify
	// against the recovered public key.
	ErrSignatureMismatch = ErrorKind("ErrSignatureMismatch")

	// ErrBackendUnavailable is returned when no backend passes its self test.
	ErrBackendUnavailable = ErrorKind("ErrBackendUnavailable")

	// ErrBackendFixed is returned when a different backend is requested after
	// the process backend has been selected.
	ErrBackendFixed = ErrorKind("ErrBackendFixed")

	// ErrUnknownBackend is returned for an unrecognised backend name.
	ErrUnknownBackend = ErrorKind("ErrUnknownBackend")

	// ErrUnknownHash is returned for an unrecognised hash name.
	ErrUnknownHash = ErrorKind("ErrUnknownHash")

	// ErrTweakInvalid is returned when a tweak is not below the group order
	// or tweaks the key to the point at infinity.
	ErrTweakInvalid = ErrorKind("ErrTweakInvalid")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to signing or recovery. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
