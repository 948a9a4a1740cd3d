package core

// IconKind selects the pictogram rendered next to a transaction.
type IconKind string

const (
	IconArrowUp IconKind = "arrow-up"
	IconEye     IconKind = "eye"
	IconPin     IconKind = "pin"
	IconWallet  IconKind = "wallet"
	IconReceipt IconKind = "receipt"
	IconBank    IconKind = "bank"
	IconGeneric IconKind = "generic"
)

// Category is one row of the presentation lookup table. An empty Label
// means "fall back to the raw type string".
type Category struct {
	Label string
	Icon  IconKind
}

// categories maps known transaction types to their presentation. The type
// enum is open: anything absent here renders with the raw type as label
// and the generic icon.
var categories = map[string]Category{
	"autoUp":       {Label: "Автоподнятие", Icon: IconArrowUp},
	"viewing":      {Label: "Просмотр", Icon: IconEye},
	"stick":        {Label: "Закрепление", Icon: IconPin},
	"replenishing": {Label: "Пополнение", Icon: IconWallet},
	"commission":   {Label: "Комиссия", Icon: IconReceipt},
	"deposit":      {Icon: IconBank},
}

// LabelOf resolves the display label for a transaction type. Total: never
// fails, unknown types come back verbatim.
func LabelOf(typ string) string {
	if c, ok := categories[typ]; ok && c.Label != "" {
		return c.Label
	}
	return typ
}

// IconOf resolves the icon for a transaction type.
func IconOf(typ string) IconKind {
	if c, ok := categories[typ]; ok && c.Icon != "" {
		return c.Icon
	}
	return IconGeneric
}
