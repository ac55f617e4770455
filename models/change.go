package models

const (
	TableMatches = "matches"
	TablePlayers = "players"
)

type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
	// ChangeResync is published when the feed may have missed notifications.
	ChangeResync ChangeOp = "RESYNC"
)

// ChangeEvent says that something in Table changed. It carries no row data.
type ChangeEvent struct {
	Table string   `json:"table"`
	Op    ChangeOp `json:"op"`
}
