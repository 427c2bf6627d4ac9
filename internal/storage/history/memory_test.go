package history

import (
	"testing"
	"time"

	"github.com/nvoss/fxpulse/internal/core"
)

func snapAt(i int) core.RateSnapshot {
	return core.RateSnapshot{
		Time:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		BaseCurrency: "USD",
		Rates:        map[string]float64{"USD/EUR": 0.92 + float64(i)*0.0001},
	}
}

func TestSnapshotStore_EmptyLast(t *testing.T) {
	store := NewSnapshotStore(10)

	if _, ok := store.Last(); ok {
		t.Error("empty store must report no last snapshot")
	}
	if store.Len() != 0 {
		t.Errorf("len = %d, want 0", store.Len())
	}
}

func TestSnapshotStore_AppendAndLast(t *testing.T) {
	store := NewSnapshotStore(10)
	store.Append(snapAt(0))
	store.Append(snapAt(1))

	last, ok := store.Last()
	if !ok {
		t.Fatal("expected a last snapshot")
	}
	if !last.Time.Equal(snapAt(1).Time) {
		t.Errorf("last time = %v, want %v", last.Time, snapAt(1).Time)
	}
}

func TestSnapshotStore_EvictsOldestFIFO(t *testing.T) {
	store := NewSnapshotStore(100)

	for i := 0; i < 150; i++ {
		store.Append(snapAt(i))
	}

	if store.Len() != 100 {
		t.Fatalf("len = %d, want exactly 100", store.Len())
	}

	kept := store.Recent(0)
	if !kept[0].Time.Equal(snapAt(50).Time) {
		t.Errorf("oldest retained = %v, want snapshot 50", kept[0].Time)
	}
	if !kept[len(kept)-1].Time.Equal(snapAt(149).Time) {
		t.Errorf("newest retained = %v, want snapshot 149", kept[len(kept)-1].Time)
	}
	for i := 1; i < len(kept); i++ {
		if !kept[i].Time.After(kept[i-1].Time) {
			t.Fatalf("retained snapshots out of order at %d", i)
		}
	}
}

func TestSnapshotStore_DefaultCapacity(t *testing.T) {
	store := NewSnapshotStore(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		store.Append(snapAt(i))
	}
	if store.Len() != DefaultCapacity {
		t.Errorf("len = %d, want %d", store.Len(), DefaultCapacity)
	}
}

func TestSnapshotStore_RecentLimit(t *testing.T) {
	store := NewSnapshotStore(10)
	for i := 0; i < 5; i++ {
		store.Append(snapAt(i))
	}

	recent := store.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("recent(3) returned %d", len(recent))
	}
	if !recent[0].Time.Equal(snapAt(2).Time) {
		t.Errorf("recent(3) should start at snapshot 2")
	}
}

func TestTransactionLog(t *testing.T) {
	log := NewTransactionLog(2)

	log.Append(core.Transaction{ID: "a"})
	log.Append(core.Transaction{ID: "b"})
	log.Append(core.Transaction{ID: "c"})

	all := log.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].ID != "b" || all[1].ID != "c" {
		t.Errorf("unexpected retained entries: %v", all)
	}
	if log.Len() != 2 {
		t.Errorf("Len() = %d, want 2", log.Len())
	}
}
