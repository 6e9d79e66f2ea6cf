package staging

import (
	"errors"

	"cart-engine/internal/pkg/errs"
)

type ErrorKind string

const (
	// KindTransport covers dial failures, timeouts and canceled contexts.
	KindTransport ErrorKind = "TRANSPORT"
	// KindRemoteRejected is a non-2xx answer from the staging endpoint.
	KindRemoteRejected ErrorKind = "REMOTE_REJECTED"
	// KindBadResponse is a 2xx answer whose body could not be used.
	KindBadResponse ErrorKind = "BAD_RESPONSE"
)

// Error is the typed failure surfaced by the staging client. The kinds map
// to distinct user messaging; state handling upstream treats them all the
// same way (cart untouched).
type Error struct {
	Kind ErrorKind
	msg  string
	err  error
}

func (e Error) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e Error) Unwrap() error {
	return e.err
}

func wrapErr(kind ErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return Error{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind ErrorKind) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
