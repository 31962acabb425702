package dictionary

import "cashflow-backend/internal/ledger"

// Kind — вид справочника в URL и в операциях хранилища.
type Kind string

const (
	KindStatus      Kind = "status"
	KindType        Kind = "type"
	KindCategory    Kind = "category"
	KindSubcategory Kind = "subcategory"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindStatus, KindType, KindCategory, KindSubcategory:
		return Kind(s), nil
	default:
		return "", ledger.New(ledger.KindValidation, "Неверный тип справочника: %q", s)
	}
}
