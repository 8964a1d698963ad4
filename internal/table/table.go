package table

import (
	"iter"

	"github.com/dhartunian/ticksum/internal/errs"
	"github.com/dhartunian/ticksum/internal/logs"
	"github.com/dhartunian/ticksum/internal/record"
	"go.uber.org/zap"
)

const (
	slotBits = 16
	// SlotSize is the number of consecutive identifiers sharing one slot.
	SlotSize = 1 << slotBits
	slotMask = SlotSize - 1
	// NumSlots is enough slots to address record.MaxID.
	NumSlots = record.MaxID>>slotBits + 1
)

type slot = [SlotSize]int64

// Table maps identifiers in [0, record.MaxID] to duration sums. It is a
// two-level direct-mapped array: the outer array is fixed, inner slots are
// allocated on first write. A Table has a single writer.
type Table struct {
	slots [NumSlots]*slot
	used  int
}

func New() *Table {
	return &Table{}
}

// Add adds d to the sum of id.
func (t *Table) Add(id uint32, d int64) error {
	if id > record.MaxID {
		e := errs.NewOutOfRangeErr()
		logs.Error(e.Error(), zap.String(logs.FieldParams, "id"), zap.Uint32(logs.FieldValue, id))
		return e
	}

	s := t.slots[id>>slotBits]
	if s == nil {
		s = new(slot)
		t.slots[id>>slotBits] = s
		t.used++
	}
	s[id&slotMask] += d
	return nil
}

// Get returns the sum of id, 0 if it was never added or is out of range.
func (t *Table) Get(id uint32) int64 {
	if id > record.MaxID {
		return 0
	}
	s := t.slots[id>>slotBits]
	if s == nil {
		return 0
	}
	return s[id&slotMask]
}

// Slots is the number of allocated inner slots.
func (t *Table) Slots() int {
	return t.used
}

// All yields (id, sum) pairs in ascending id order.
//
// An entry whose sum is exactly zero is indistinguishable from one never
// written and is skipped, so an identifier whose durations cancel out does
// not appear in the output.
func (t *Table) All() iter.Seq2[uint32, int64] {
	return func(yield func(uint32, int64) bool) {
		for i := range t.slots {
			s := t.slots[i]
			if s == nil {
				continue
			}
			base := uint32(i) << slotBits
			for j, v := range s {
				if v == 0 {
					continue
				}
				if !yield(base+uint32(j), v) {
					return
				}
			}
		}
	}
}

// Merge folds tables into a fresh table. The inputs are only read.
func Merge(tables ...*Table) (*Table, error) {
	merged := New()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for id, sum := range t.All() {
			if err := merged.Add(id, sum); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}
