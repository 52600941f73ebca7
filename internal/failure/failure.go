// Package failure defines the error taxonomy returned by the booking core.
// Every error that leaves the service layer is a *Failure, so transports can
// map it without inspecting messages.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindBusinessRule Kind = "BUSINESS_RULE"
	KindUpstream     Kind = "UPSTREAM"
	KindNotFound     Kind = "NOT_FOUND"
	KindPersistence  Kind = "PERSISTENCE"
)

// UpstreamKind classifies a provider failure the way the provider did.
type UpstreamKind string

const (
	UpstreamNotFound    UpstreamKind = "NOT_FOUND"
	UpstreamBadRequest  UpstreamKind = "BAD_REQUEST"
	UpstreamServerError UpstreamKind = "SERVER_ERROR"
	UpstreamTransport   UpstreamKind = "TRANSPORT"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Failure struct {
	Kind     Kind
	Upstream UpstreamKind
	Message  string
	Fields   []FieldError
	cause    error
}

func (f *Failure) Error() string {
	if len(f.Fields) == 0 {
		return f.Message
	}
	parts := make([]string, 0, len(f.Fields))
	for _, fe := range f.Fields {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s (%s)", f.Message, strings.Join(parts, "; "))
}

func (f *Failure) Unwrap() error {
	return f.cause
}

// ClientFault reports whether the caller, not this service or a dependency
// outage, is responsible for the failure.
func (f *Failure) ClientFault() bool {
	switch f.Kind {
	case KindValidation, KindBusinessRule, KindNotFound:
		return true
	case KindUpstream:
		return f.Upstream == UpstreamNotFound || f.Upstream == UpstreamBadRequest
	default:
		return false
	}
}

func Validation(message string, fields []FieldError) *Failure {
	return &Failure{Kind: KindValidation, Message: message, Fields: fields}
}

func BusinessRule(message string) *Failure {
	return &Failure{Kind: KindBusinessRule, Message: message}
}

func Upstream(kind UpstreamKind, message string, cause error) *Failure {
	return &Failure{Kind: KindUpstream, Upstream: kind, Message: message, cause: cause}
}

func NotFound(message string) *Failure {
	return &Failure{Kind: KindNotFound, Message: message}
}

func Persistence(message string, cause error) *Failure {
	return &Failure{Kind: KindPersistence, Message: message, cause: cause}
}

func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// KindOf returns the failure kind of err, or "" when err is not a Failure.
func KindOf(err error) Kind {
	if f, ok := As(err); ok {
		return f.Kind
	}
	return ""
}
