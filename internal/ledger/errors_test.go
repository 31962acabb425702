package ledger

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:               fiber.StatusNotFound,
		KindDuplicateName:          fiber.StatusConflict,
		KindReferencedByDependents: fiber.StatusConflict,
		KindInvalidParent:          fiber.StatusBadRequest,
		KindChainMismatch:          fiber.StatusBadRequest,
		KindInvalidAmount:          fiber.StatusBadRequest,
		KindValidation:             fiber.StatusBadRequest,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Errorf("%s: статус %d, ожидался %d", kind, got, want)
		}
	}
}

func TestAsErrorUnwrapsChain(t *testing.T) {
	orig := New(KindChainMismatch, "Подкатегория не принадлежит выбранной категории")
	wrapped := fmt.Errorf("сохранение транзакции: %w", orig)

	le, ok := AsError(wrapped)
	if !ok {
		t.Fatal("ошибка не извлечена из цепочки")
	}
	if le.Kind != KindChainMismatch || le.Message != orig.Message {
		t.Errorf("извлечено: %+v", le)
	}

	if _, ok := AsError(fmt.Errorf("обычная ошибка")); ok {
		t.Error("AsError не должен находить Error в посторонней ошибке")
	}
}
