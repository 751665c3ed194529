package domain

// PurchaseSignal is one completed-order line item. Orders that are not in
// the COMPLETED state never produce a signal.
type PurchaseSignal struct {
	UserID    int64
	ProductID int64
	Quantity  int
}

// ReviewSignal is one explicit rating, optionally with free text.
type ReviewSignal struct {
	UserID    int64
	ProductID int64
	Rating    int
	Text      string
}
