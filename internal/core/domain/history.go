package domain

// HistorySnapshot is one entry in the append-only audit trail: the full
// directory state as it stood after a mutation, stamped with an RFC3339
// timestamp.
type HistorySnapshot struct {
	Timestamp string         `json:"timestamp"`
	Data      DirectoryState `json:"data"`
}
