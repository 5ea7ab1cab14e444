package models

// IntentKind discriminates the closed set of intent variants.
type IntentKind string

const (
	KindRegularChat        IntentKind = "REGULAR_CHAT"
	KindBookCataloging     IntentKind = "BOOK_CATALOGING"
	KindManualBookEntry    IntentKind = "MANUAL_BOOK_ENTRY"
	KindInventorySearch    IntentKind = "INVENTORY_SEARCH"
	KindUpdateBook         IntentKind = "UPDATE_BOOK"
	KindDeleteBook         IntentKind = "DELETE_BOOK"
	KindInventoryAnalytics IntentKind = "INVENTORY_ANALYTICS"
	KindInventoryHelp      IntentKind = "INVENTORY_HELP"
	KindInventoryExport    IntentKind = "INVENTORY_EXPORT"
	KindBatchOperation     IntentKind = "BATCH_OPERATION"
)

// Intent is the classified meaning of a user message. The detector produces
// exactly one variant per input, and every variant carries the original
// message verbatim so callers can always fall back to displaying it.
type Intent interface {
	Kind() IntentKind
	Message() string
	isIntent()
}

// RegularChat is any message that is not an inventory command.
type RegularChat struct {
	Msg string `json:"message"`
}

// BookCataloging asks to recognize books from an attached image.
type BookCataloging struct {
	Msg      string `json:"message"`
	HasImage bool   `json:"hasImage"`
}

// ManualBookEntry adds a single book from a typed description. Price and
// Quantity are nil when the message did not contain them.
type ManualBookEntry struct {
	Msg      string   `json:"message"`
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Location string   `json:"location,omitempty"`
}

// InventorySearch looks up existing books.
type InventorySearch struct {
	Msg        string     `json:"message"`
	Query      string     `json:"query"`
	SearchType SearchType `json:"searchType"`
}

// UpdateBook mutates one field of an existing book.
type UpdateBook struct {
	Msg            string     `json:"message"`
	UpdateType     UpdateType `json:"updateType"`
	BookIdentifier string     `json:"bookIdentifier,omitempty"`
	NewValue       string     `json:"newValue,omitempty"`
}

// DeleteBook removes a book from the inventory.
type DeleteBook struct {
	Msg            string `json:"message"`
	BookIdentifier string `json:"bookIdentifier,omitempty"`
}

// InventoryAnalytics requests aggregate statistics.
type InventoryAnalytics struct {
	Msg           string        `json:"message"`
	AnalyticsType AnalyticsType `json:"analyticsType"`
}

// InventoryHelp is a request for usage guidance. It is also the fallback for
// messages that carry inventory vocabulary but match no structured command.
type InventoryHelp struct {
	Msg string `json:"message"`
}

// InventoryExport requests a backup or export of the inventory.
type InventoryExport struct {
	Msg        string     `json:"message"`
	ExportType ExportType `json:"exportType"`
}

// BatchOperation requests a multi-record operation.
type BatchOperation struct {
	Msg           string             `json:"message"`
	OperationType BatchOperationType `json:"operationType"`
}

func (RegularChat) Kind() IntentKind        { return KindRegularChat }
func (BookCataloging) Kind() IntentKind     { return KindBookCataloging }
func (ManualBookEntry) Kind() IntentKind    { return KindManualBookEntry }
func (InventorySearch) Kind() IntentKind    { return KindInventorySearch }
func (UpdateBook) Kind() IntentKind         { return KindUpdateBook }
func (DeleteBook) Kind() IntentKind         { return KindDeleteBook }
func (InventoryAnalytics) Kind() IntentKind { return KindInventoryAnalytics }
func (InventoryHelp) Kind() IntentKind      { return KindInventoryHelp }
func (InventoryExport) Kind() IntentKind    { return KindInventoryExport }
func (BatchOperation) Kind() IntentKind     { return KindBatchOperation }

func (i RegularChat) Message() string        { return i.Msg }
func (i BookCataloging) Message() string     { return i.Msg }
func (i ManualBookEntry) Message() string    { return i.Msg }
func (i InventorySearch) Message() string    { return i.Msg }
func (i UpdateBook) Message() string         { return i.Msg }
func (i DeleteBook) Message() string         { return i.Msg }
func (i InventoryAnalytics) Message() string { return i.Msg }
func (i InventoryHelp) Message() string      { return i.Msg }
func (i InventoryExport) Message() string    { return i.Msg }
func (i BatchOperation) Message() string     { return i.Msg }

func (RegularChat) isIntent()        {}
func (BookCataloging) isIntent()     {}
func (ManualBookEntry) isIntent()    {}
func (InventorySearch) isIntent()    {}
func (UpdateBook) isIntent()         {}
func (DeleteBook) isIntent()         {}
func (InventoryAnalytics) isIntent() {}
func (InventoryHelp) isIntent()      {}
func (InventoryExport) isIntent()    {}
func (BatchOperation) isIntent()     {}
