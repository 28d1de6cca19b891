package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"

	"golang.org/x/oauth2"

	"adp-lms-sync/internal/apperr"
)

// Classify maps a failure from DoWithRetry onto the apperr taxonomy.
// Callers that understand a vendor's error body should check it first and
// only fall back to Classify for what is left.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return apperr.Wrap(apperr.CodeAuth, op, err)
	}

	var herr *HTTPError
	if errors.As(err, &herr) {
		return apperr.Wrap(codeForStatus(herr.StatusCode), op, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.CodeTransient, op, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return apperr.Wrap(apperr.CodeTransient, op, err)
	}
	var oerr *net.OpError
	if errors.As(err, &oerr) {
		return apperr.Wrap(apperr.CodeTransient, op, err)
	}
	if isRetryableNetErr(err) {
		return apperr.Wrap(apperr.CodeTransient, op, err)
	}
	return apperr.Wrap(apperr.CodeUnknown, op, err)
}

func codeForStatus(status int) apperr.Code {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.CodeAuth
	case status == http.StatusNotFound:
		return apperr.CodeNotFound
	case status == http.StatusConflict:
		return apperr.CodeDuplicate
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperr.CodeValidation
	case status == http.StatusTooManyRequests || status == http.StatusRequestTimeout || status >= 500:
		return apperr.CodeTransient
	default:
		return apperr.CodeUnknown
	}
}
