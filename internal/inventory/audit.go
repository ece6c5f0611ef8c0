package inventory

import "fmt"

// Actor identifies who made a change, as it appears in audit sentences.
type Actor struct {
	Nama string
	Role string
}

// Entry is one field-level change to an inventory record.
type Entry struct {
	Field string
	Old   string
	New   string
	Actor Actor
}

// Keterangan renders the entry to the human-readable audit sentence stored
// in log_inventory.
func (e Entry) Keterangan() string {
	return fmt.Sprintf("%s (as %s) changed %s from %s to %s", e.Actor.Nama, e.Actor.Role, e.Field, e.Old, e.New)
}

func imageChangeKeterangan(actor Actor) string {
	return fmt.Sprintf("%s changed image", actor.Nama)
}

func deletionKeterangan(actor Actor, name string) string {
	return fmt.Sprintf("%s (as %s) deleted %s", actor.Nama, actor.Role, name)
}
