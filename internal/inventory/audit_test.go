package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryKeterangan(t *testing.T) {
	entry := Entry{
		Field: "stock",
		Old:   "5",
		New:   "12",
		Actor: Actor{Nama: "Budi", Role: "pekerja"},
	}
	assert.Equal(t, "Budi (as pekerja) changed stock from 5 to 12", entry.Keterangan())
}

func TestImageChangeKeterangan(t *testing.T) {
	assert.Equal(t, "Siti changed image", imageChangeKeterangan(Actor{Nama: "Siti", Role: "pemilik"}))
}

func TestDeletionKeterangan(t *testing.T) {
	assert.Equal(t, "Siti (as pemilik) deleted Pakan Starter", deletionKeterangan(Actor{Nama: "Siti", Role: "pemilik"}, "Pakan Starter"))
}
