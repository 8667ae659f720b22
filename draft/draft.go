// Package draft holds the order currently being built: an ordered list of
// measured window entries, the customer it will be saved against, and the
// edit cursor. A Draft is mutable state owned by one clerk session; nothing
// in here touches storage.
package draft

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"curtainpro-backend/calc"
)

// Lining is the lining choice for a window, shared by both layers of a
// double-layer window.
type Lining string

const (
	FullLining   Lining = "Full Lining"
	NormalLining Lining = "Normal Lining"
	NoLining     Lining = "No Lining"
)

// Entry is one window treatment in the draft. Derived measurement fields are
// recomputed from the raw inputs on every mutation and are never set
// directly.
type Entry struct {
	ID         uuid.UUID   `json:"id"`
	WindowName string      `json:"windowName"`
	Stitch     calc.Stitch `json:"stitchType"`
	WidthIn    float64     `json:"widthInches"`
	HeightIn   float64     `json:"heightInches"`
	Lining     Lining      `json:"lining,omitempty"`

	// Layer is 0 for a single window, 1 or 2 for the members of a
	// double-layer pair. Siblings share PairID; the pairing is never
	// inferred from the window name.
	Layer  int       `json:"layer,omitempty"`
	PairID uuid.UUID `json:"pairId,omitempty"`

	calc.Measurements

	Images [][]byte `json:"-"`
}

// Input carries the raw fields a clerk enters for one window.
type Input struct {
	WindowName string
	Stitch     calc.Stitch
	WidthIn    float64
	HeightIn   float64
	Lining     Lining
	Images     [][]byte
}

// SheerInput optionally overrides the second layer of a double-layer window.
// Zero-valued fields fall back to mirroring the main layer.
type SheerInput struct {
	Stitch   calc.Stitch
	WidthIn  float64
	HeightIn float64
}

// Totals is the order-level sum of the numeric derived fields. Entries whose
// field does not apply contribute zero.
type Totals struct {
	Quantity  float64 `json:"quantity"`
	TrackFeet float64 `json:"trackFeet"`
	SQFT      float64 `json:"sqft"`
	Panels    int     `json:"panels"`
}

// CustomerRef is the draft's nullable pointer at the customer the order will
// be saved against. It stays mutable until save.
type CustomerRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	Showroom string    `json:"showroom,omitempty"`
}

// ErrNotFound is returned when an entry id is not in the draft.
var ErrNotFound = errors.New("draft: entry not found")

// Draft is one in-progress order. Its methods are safe for concurrent use:
// the same clerk's requests can overlap (a double-clicked add, a draft view
// refreshing while an update is in flight), so every operation holds the
// draft's lock.
type Draft struct {
	mu       sync.Mutex
	entries  []Entry
	customer *CustomerRef
	editing  *uuid.UUID
}

func New() *Draft {
	return &Draft{}
}

// defaultWindowName fills the customary placeholder for unnamed windows.
func defaultWindowName(name string) string {
	if name == "" {
		return "Window"
	}
	return name
}

func buildEntry(in Input) Entry {
	return Entry{
		ID:           uuid.New(),
		WindowName:   defaultWindowName(in.WindowName),
		Stitch:       in.Stitch,
		WidthIn:      in.WidthIn,
		HeightIn:     in.HeightIn,
		Lining:       in.Lining,
		Measurements: calc.Measure(in.Stitch, in.WidthIn, in.HeightIn),
		Images:       in.Images,
	}
}

// Add appends one window entry and returns it.
func (d *Draft) Add(in Input) Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	e := buildEntry(in)
	d.entries = append(d.entries, e)
	return e
}

// AddPair appends a double-layer window: two sibling entries sharing a pair
// id, the main layer first. The sheer layer mirrors the main layer's
// stitch and dimensions unless overridden.
func (d *Draft) AddPair(in Input, sheer SheerInput) (Entry, Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	pairID := uuid.New()
	base := defaultWindowName(in.WindowName)

	main := buildEntry(in)
	main.WindowName = base + " - Layer 1"
	main.Layer = 1
	main.PairID = pairID

	second := in
	if sheer.Stitch != "" {
		second.Stitch = sheer.Stitch
	}
	if sheer.WidthIn != 0 {
		second.WidthIn = sheer.WidthIn
	}
	if sheer.HeightIn != 0 {
		second.HeightIn = sheer.HeightIn
	}
	second.Images = nil

	layer2 := buildEntry(second)
	layer2.WindowName = base + " - Layer 2"
	layer2.Layer = 2
	layer2.PairID = pairID

	d.entries = append(d.entries, main, layer2)
	return main, layer2
}

func (d *Draft) index(id uuid.UUID) int {
	for i := range d.entries {
		if d.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Draft) siblingIndex(of Entry) int {
	if of.PairID == uuid.Nil {
		return -1
	}
	for i := range d.entries {
		if d.entries[i].PairID == of.PairID && d.entries[i].ID != of.ID {
			return i
		}
	}
	return -1
}

// Update replaces the entry with the given id, recomputing its derived
// fields. doubleLayer controls the pair membership going forward: turning it
// off dissolves the pair (the layer-2 entry is dropped, or flattened when it
// is the one being edited), turning it on creates a sibling. When the
// updated entry is part of a pair, the sibling's shared fields (base name,
// lining) are kept consistent.
func (d *Draft) Update(id uuid.UUID, in Input, doubleLayer bool, sheer SheerInput) (Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.index(id)
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	prev := d.entries[i]

	e := buildEntry(in)
	e.ID = prev.ID
	if len(in.Images) == 0 {
		e.Images = prev.Images
	}

	sib := d.siblingIndex(prev)

	switch {
	case doubleLayer && sib >= 0:
		// Stays a pair: refresh both siblings around the new base name.
		base := defaultWindowName(in.WindowName)
		e.Layer = prev.Layer
		e.PairID = prev.PairID
		e.WindowName = fmt.Sprintf("%s - Layer %d", base, e.Layer)
		d.entries[i] = e

		other := &d.entries[sib]
		other.WindowName = fmt.Sprintf("%s - Layer %d", base, other.Layer)
		other.Lining = in.Lining
		if other.Layer == 2 {
			second := Input{
				Stitch:   other.Stitch,
				WidthIn:  other.WidthIn,
				HeightIn: other.HeightIn,
			}
			if sheer.Stitch != "" {
				second.Stitch = sheer.Stitch
			}
			if sheer.WidthIn != 0 {
				second.WidthIn = sheer.WidthIn
			}
			if sheer.HeightIn != 0 {
				second.HeightIn = sheer.HeightIn
			}
			other.Stitch = second.Stitch
			other.WidthIn = second.WidthIn
			other.HeightIn = second.HeightIn
			other.Measurements = calc.Measure(second.Stitch, second.WidthIn, second.HeightIn)
		}

	case doubleLayer && sib < 0:
		// Pair toggled on: this entry becomes layer 1 and gains a sibling.
		base := defaultWindowName(in.WindowName)
		e.Layer = 1
		e.PairID = uuid.New()
		e.WindowName = base + " - Layer 1"
		d.entries[i] = e

		second := in
		if sheer.Stitch != "" {
			second.Stitch = sheer.Stitch
		}
		if sheer.WidthIn != 0 {
			second.WidthIn = sheer.WidthIn
		}
		if sheer.HeightIn != 0 {
			second.HeightIn = sheer.HeightIn
		}
		second.Images = nil

		layer2 := buildEntry(second)
		layer2.WindowName = base + " - Layer 2"
		layer2.Layer = 2
		layer2.PairID = e.PairID

		rest := append([]Entry{layer2}, d.entries[i+1:]...)
		d.entries = append(d.entries[:i+1], rest...)

	case !doubleLayer && sib >= 0:
		// Pair toggled off: flatten this entry, drop a layer-2 sibling.
		// When the edited entry was itself layer 2, the layer-1 sibling
		// survives as an independent single window.
		e.Layer = 0
		e.PairID = uuid.Nil
		d.entries[i] = e
		sib = d.siblingIndex(prev) // sibling may have shifted
		if sib >= 0 {
			other := &d.entries[sib]
			if other.Layer == 2 {
				d.removeAt(sib)
			} else {
				other.WindowName = strings.TrimSuffix(other.WindowName,
					fmt.Sprintf(" - Layer %d", other.Layer))
				other.Layer = 0
				other.PairID = uuid.Nil
			}
		}

	default:
		d.entries[i] = e
	}

	if d.editing != nil && *d.editing == id {
		d.editing = nil
	}
	return e, nil
}

func (d *Draft) removeAt(i int) {
	removed := d.entries[i]
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	if d.editing != nil && *d.editing == removed.ID {
		d.editing = nil
	}
}

// Remove deletes one entry. It deliberately does not cascade to a layer
// sibling; each layer is deletable on its own. Deleting the entry currently
// being edited resets the edit cursor.
func (d *Draft) Remove(id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	d.removeAt(i)
	return nil
}

// BeginEdit moves the cursor to Editing(id).
func (d *Draft) BeginEdit(id uuid.UUID) (Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.index(id)
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	id = d.entries[i].ID
	d.editing = &id
	return d.entries[i], nil
}

// CancelEdit returns the cursor to Idle.
func (d *Draft) CancelEdit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editing = nil
}

// Editing reports the id under edit, or nil when idle.
func (d *Draft) Editing() *uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.editing == nil {
		return nil
	}
	id := *d.editing
	return &id
}

// Entries returns a copy of the draft's entries in order.
func (d *Draft) Entries() []Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Get returns one entry by id.
func (d *Draft) Get(id uuid.UUID) (Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.index(id)
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	return d.entries[i], nil
}

// Len reports the number of entries.
func (d *Draft) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Customer returns the draft's current customer reference, nil until one is
// attached.
func (d *Draft) Customer() *CustomerRef {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.customer
}

// SetCustomer attaches (or replaces) the customer reference.
func (d *Draft) SetCustomer(c *CustomerRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.customer = c
}

// Replace swaps the whole working set, as when a saved order is loaded back.
// The edit cursor resets.
func (d *Draft) Replace(entries []Entry, customer *CustomerRef) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append([]Entry(nil), entries...)
	d.customer = customer
	d.editing = nil
}

// Reset clears the entries, customer reference and edit cursor.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
	d.customer = nil
	d.editing = nil
}

// Totals sums the numeric derived fields across all entries. Inapplicable
// (nil) fields count as zero, so the result is insensitive to entry order.
func (d *Draft) Totals() Totals {
	d.mu.Lock()
	defer d.mu.Unlock()
	return SumEntries(d.entries)
}

// SumEntries applies the order-total summation rule to any entry list. The
// document renderer uses the same rule so printed totals always match the
// screen.
func SumEntries(entries []Entry) Totals {
	var t Totals
	for _, e := range entries {
		t.Quantity += e.Quantity
		if e.TrackFeet != nil {
			t.TrackFeet += *e.TrackFeet
		}
		if e.SQFT != nil {
			t.SQFT += *e.SQFT
		}
		if e.Panels != nil {
			t.Panels += *e.Panels
		}
	}
	return t
}
