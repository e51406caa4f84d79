package ports

// Field wraps a patch value with presence information so a handler can tell
// "omitted" apart from "explicitly set to null or the zero value". Only
// fields with Set=true are applied by the services.
type Field[T any] struct {
	Set   bool
	Value T
}

// Present builds a set Field.
func Present[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// CreateTodoRequest carries a new todo.
type CreateTodoRequest struct {
	Title     string `json:"title" validate:"required"`
	Details   string `json:"details"`
	Completed bool   `json:"completed"`
}

// TodoPatch is a sparse todo update; absent fields stay untouched and an
// explicit null on Details clears it.
type TodoPatch struct {
	Title     Field[string]
	Details   Field[string]
	Completed Field[bool]
}

// CreateReminderRequest carries a new reminder draft.
type CreateReminderRequest struct {
	Service     string `json:"service"`
	Content     string `json:"content" validate:"required"`
	DueTime     string `json:"due_time"`
	AdvanceDays *int   `json:"advance_days"`
	Recurring   bool   `json:"recurring"`
	CycleMode   string `json:"cycle_mode"`
	CycleDays   int    `json:"cycle_days"`
}

// ReminderPatch is a sparse reminder update.
type ReminderPatch struct {
	Service     Field[string]
	Content     Field[string]
	Type        Field[string]
	Processed   Field[bool]
	DueTime     Field[string]
	AdvanceDays Field[int]
	Recurring   Field[bool]
	CycleMode   Field[string]
	CycleDays   Field[int]
}

// CreateBookmarkRequest carries a new bookmark; Tags accepts either a JSON
// list or a comma-separated string at the transport layer.
type CreateBookmarkRequest struct {
	Name string   `json:"name"`
	URL  string   `json:"url" validate:"required"`
	Tags []string `json:"-"`
}

// BookmarkPatch is a sparse bookmark update.
type BookmarkPatch struct {
	Name Field[string]
	URL  Field[string]
	Tags Field[[]string]
}

// SubmitStatusRequest carries one server-health report. Extra holds any
// unrecognized payload fields.
type SubmitStatusRequest struct {
	ServerName  string `validate:"required"`
	ServiceName string `validate:"required"`
	Content     string `validate:"required"`
	IsSuccess   bool
	Time        string
	Extra       map[string]any
}

// CreateLedgerEntryRequest carries a new ledger entry.
type CreateLedgerEntryRequest struct {
	Item       string  `json:"item" validate:"required"`
	Amount     float64 `json:"amount"`
	Interest   float64 `json:"interest"`
	RecordType string  `json:"record_type" validate:"required"`
	RecordDate string  `json:"record_date"`
	Category   string  `json:"category"`
	Notes      string  `json:"notes"`
}

// UpdateLedgerEntryRequest replaces all mutable fields of a stored entry.
type UpdateLedgerEntryRequest = CreateLedgerEntryRequest

// OverwriteBalanceRequest is the manual-correction escape hatch for the
// asset/liability singletons.
type OverwriteBalanceRequest struct {
	Amount float64 `json:"amount"`
}
