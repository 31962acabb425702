package ledger

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind — машиночитаемый вид ошибки. Граничный слой не различает,
// отклонила ли запись предварительная проверка или constraint БД:
// оба пути дают один и тот же Kind.
type Kind string

const (
	KindDuplicateName          Kind = "duplicate_name"
	KindInvalidParent          Kind = "invalid_parent"
	KindReferencedByDependents Kind = "referenced_by_dependents"
	KindChainMismatch          Kind = "chain_mismatch"
	KindInvalidAmount          Kind = "invalid_amount"
	KindNotFound               Kind = "not_found"
	KindValidation             Kind = "validation_error"
)

// Error — структурированная ошибка ядра: вид + сообщение для пользователя.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus — соответствие вида ошибки HTTP-статусу для ErrorHandler.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindDuplicateName, KindReferencedByDependents:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// AsError извлекает *Error из цепочки ошибок.
func AsError(err error) (*Error, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
