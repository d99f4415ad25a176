// Package apperr определяет классы ошибок, которые видны клиенту API.
package apperr

import (
	"errors"
	"slices"
	"strings"
)

// Kind - класс ошибки, возвращаемый клиенту.
type Kind string

// Классы ошибок.
const (
	KindInvalidInput      Kind = "InvalidInput"
	KindUnauthenticated   Kind = "Unauthenticated"
	KindInvalidToken      Kind = "InvalidToken"
	KindExpiredToken      Kind = "ExpiredToken"
	KindUnknownIdentity   Kind = "UnknownIdentity"
	KindAccessDenied      Kind = "AccessDenied"
	KindNotFound          Kind = "NotFound"
	KindDuplicateIdentity Kind = "DuplicateIdentity"
	KindStorage           Kind = "StorageError"
	KindInternal          Kind = "Internal"
)

// Базовые ошибки. Слои оборачивают их через fmt.Errorf("...: %w", ...).
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrUnknownIdentity   = errors.New("unknown identity")
	ErrAccessDenied      = errors.New("access denied")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateIdentity = errors.New("identity already exists")
	ErrStorage           = errors.New("storage error")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidInput, KindInvalidInput},
	{ErrUnauthenticated, KindUnauthenticated},
	{ErrInvalidToken, KindInvalidToken},
	{ErrExpiredToken, KindExpiredToken},
	{ErrUnknownIdentity, KindUnknownIdentity},
	{ErrAccessDenied, KindAccessDenied},
	{ErrNotFound, KindNotFound},
	{ErrDuplicateIdentity, KindDuplicateIdentity},
	{ErrStorage, KindStorage},
}

// KindOf возвращает класс ошибки; неизвестные ошибки относятся к KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// Message возвращает текст ошибки для клиента: описания ошибок, которые
// непосредственно оборачивают базовую ошибку, без служебного контекста слоев.
// Если таких нет, возвращается текст базовой ошибки.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var msgs []string
	collectMessages(err, &msgs)
	if len(msgs) > 0 {
		return strings.Join(msgs, "; ")
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.err.Error()
		}
	}
	return err.Error()
}

func collectMessages(err error, msgs *[]string) {
	var children []error
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		children = e.Unwrap()
	case interface{ Unwrap() error }:
		if child := e.Unwrap(); child != nil {
			children = []error{child}
		}
	}

	for _, child := range children {
		if isBase(child) {
			if msg, ok := strings.CutSuffix(err.Error(), ": "+child.Error()); ok && !slices.Contains(*msgs, msg) {
				*msgs = append(*msgs, msg)
			}
			continue
		}
		collectMessages(child, msgs)
	}
}

func isBase(err error) bool {
	for _, k := range kinds {
		if err == k.err { //nolint:errorlint
			return true
		}
	}
	return false
}
