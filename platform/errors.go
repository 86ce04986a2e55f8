package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrPermissionDenied means the bot lacks a capability; repeating the call will fail the same way.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotFound means the target (usually a message) is already gone.
	ErrNotFound = errors.New("not found")
	// ErrTransient covers rate limits and momentary unavailability.
	ErrTransient = errors.New("transient failure")
)

// ErrorKind classifies a platform error.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindPermissionDenied
	KindNotFound
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	default:
		return "transient"
	}
}

// Kind maps any error returned by this package (or by discordgo directly) onto the taxonomy.
// Anything unrecognized is treated as transient.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrTransient):
		return KindTransient
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
				return KindPermissionDenied
			case discordgo.ErrCodeUnknownMessage:
				return KindNotFound
			}
		}
		if restErr.Response != nil {
			switch restErr.Response.StatusCode {
			case http.StatusForbidden, http.StatusUnauthorized:
				return KindPermissionDenied
			case http.StatusNotFound:
				return KindNotFound
			}
		}
	}
	return KindTransient
}

// wrap attaches the matching sentinel so callers can use errors.Is.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch Kind(err) {
	case KindPermissionDenied:
		return fmt.Errorf("%s: %w: %w", op, ErrPermissionDenied, err)
	case KindNotFound:
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
	}
}
