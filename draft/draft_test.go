package draft

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainpro-backend/calc"
)

func pleated(name string, w, h float64) Input {
	return Input{WindowName: name, Stitch: calc.Pleated, WidthIn: w, HeightIn: h}
}

func TestAddRecomputesDerivedFields(t *testing.T) {
	d := New()
	e := d.Add(pleated("Bedroom", 72, 84))

	assert.Equal(t, "Bedroom", e.WindowName)
	assert.InDelta(t, 10.04, e.Quantity, 1e-9)
	require.NotNil(t, e.TrackFeet)
	assert.InDelta(t, 6.0, *e.TrackFeet, 1e-9)
	require.NotNil(t, e.Panels)
	assert.Equal(t, 4, *e.Panels)
	assert.Nil(t, e.SQFT)
}

func TestAddDefaultsWindowName(t *testing.T) {
	d := New()
	e := d.Add(pleated("", 36, 48))
	assert.Equal(t, "Window", e.WindowName)
}

func TestAddPair(t *testing.T) {
	d := New()
	main, sheer := d.AddPair(
		Input{WindowName: "Living Room", Stitch: calc.Pleated, WidthIn: 60, HeightIn: 84},
		SheerInput{Stitch: calc.Eyelet},
	)

	assert.Equal(t, "Living Room - Layer 1", main.WindowName)
	assert.Equal(t, "Living Room - Layer 2", sheer.WindowName)
	assert.Equal(t, 1, main.Layer)
	assert.Equal(t, 2, sheer.Layer)
	assert.Equal(t, main.PairID, sheer.PairID)
	assert.NotEqual(t, main.ID, sheer.ID)

	// Sheer mirrors the main dimensions when not overridden.
	assert.Equal(t, calc.Eyelet, sheer.Stitch)
	assert.Equal(t, 60.0, sheer.WidthIn)
	assert.Equal(t, 84.0, sheer.HeightIn)

	// Both layers are measured independently and both feed the totals.
	totals := d.Totals()
	single := New()
	one := single.Add(Input{Stitch: calc.Pleated, WidthIn: 60, HeightIn: 84})
	two := single.Add(Input{Stitch: calc.Eyelet, WidthIn: 60, HeightIn: 84})
	assert.InDelta(t, one.Quantity+two.Quantity, totals.Quantity, 1e-9)
}

func TestRemoveLayerDoesNotCascade(t *testing.T) {
	d := New()
	main, sheer := d.AddPair(pleated("Living Room", 60, 84), SheerInput{})

	require.NoError(t, d.Remove(sheer.ID))

	require.Equal(t, 1, d.Len())
	left, err := d.Get(main.ID)
	require.NoError(t, err)
	assert.Equal(t, "Living Room - Layer 1", left.WindowName)
}

func TestUpdateRecomputes(t *testing.T) {
	d := New()
	e := d.Add(pleated("Bedroom", 72, 84))

	got, err := d.Update(e.ID, Input{WindowName: "Bedroom", Stitch: calc.BlindsRegular, WidthIn: 36, HeightIn: 48}, false, SheerInput{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, got.Quantity)
	assert.Nil(t, got.TrackFeet)
	require.NotNil(t, got.SQFT)
	assert.InDelta(t, 12.0, *got.SQFT, 1e-9)
	assert.Equal(t, 1, d.Len())
}

func TestUpdateKeepsImagesWhenNoneSupplied(t *testing.T) {
	d := New()
	in := pleated("Bedroom", 72, 84)
	in.Images = [][]byte{[]byte("jpeg-bytes")}
	e := d.Add(in)

	got, err := d.Update(e.ID, pleated("Bedroom", 80, 84), false, SheerInput{})
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	assert.Equal(t, []byte("jpeg-bytes"), got.Images[0])
}

func TestUpdateToggleDoubleLayerOn(t *testing.T) {
	d := New()
	e := d.Add(pleated("Hall", 60, 84))

	_, err := d.Update(e.ID, pleated("Hall", 60, 84), true, SheerInput{Stitch: calc.Eyelet})
	require.NoError(t, err)

	entries := d.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Hall - Layer 1", entries[0].WindowName)
	assert.Equal(t, "Hall - Layer 2", entries[1].WindowName)
	assert.Equal(t, entries[0].PairID, entries[1].PairID)
	assert.Equal(t, calc.Eyelet, entries[1].Stitch)
}

func TestUpdateToggleDoubleLayerOff(t *testing.T) {
	d := New()
	main, _ := d.AddPair(pleated("Hall", 60, 84), SheerInput{})

	got, err := d.Update(main.ID, pleated("Hall", 60, 84), false, SheerInput{})
	require.NoError(t, err)

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, 0, got.Layer)
	assert.Equal(t, "Hall", got.WindowName)
}

func TestUpdateToggleDoubleLayerOffFromSecondLayer(t *testing.T) {
	d := New()
	_, sheer := d.AddPair(pleated("Hall", 60, 84), SheerInput{})

	got, err := d.Update(sheer.ID, pleated("Hall Sheer", 60, 84), false, SheerInput{})
	require.NoError(t, err)

	// Editing the second layer dissolves the pair without deleting the
	// first: both survive as independent single windows.
	entries := d.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Hall Sheer", got.WindowName)
	for _, e := range entries {
		assert.Equal(t, 0, e.Layer)
		assert.Equal(t, uuid.Nil, e.PairID)
	}
	assert.Equal(t, "Hall", entries[0].WindowName)
}

func TestUpdatePairRenamesBothLayers(t *testing.T) {
	d := New()
	main, _ := d.AddPair(pleated("Hall", 60, 84), SheerInput{})

	_, err := d.Update(main.ID, pleated("Foyer", 60, 84), true, SheerInput{})
	require.NoError(t, err)

	entries := d.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Foyer - Layer 1", entries[0].WindowName)
	assert.Equal(t, "Foyer - Layer 2", entries[1].WindowName)
}

func TestUpdateUnknownID(t *testing.T) {
	d := New()
	_, err := d.Update(uuid.New(), pleated("x", 1, 1), false, SheerInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTotalsTreatNilAsZero(t *testing.T) {
	d := New()
	d.Add(pleated("A", 72, 84))                                        // track+panels, no sqft
	d.Add(Input{Stitch: calc.BlindsRegular, WidthIn: 36, HeightIn: 48}) // sqft only
	d.Add(Input{Stitch: calc.Stitch("Mystery"), WidthIn: 99, HeightIn: 99})

	totals := d.Totals()
	assert.InDelta(t, 10.04, totals.Quantity, 1e-9)
	assert.InDelta(t, 6.0, totals.TrackFeet, 1e-9)
	assert.InDelta(t, 12.0, totals.SQFT, 1e-9)
	assert.Equal(t, 4, totals.Panels)
}

func TestTotalsOrderIndependent(t *testing.T) {
	inputs := []Input{
		pleated("A", 72, 84),
		{Stitch: calc.Ripple, WidthIn: 55, HeightIn: 70},
		{Stitch: calc.RomanBlinds48, WidthIn: 100, HeightIn: 60},
		{Stitch: calc.BlindsRegular, WidthIn: 36, HeightIn: 48},
		{Stitch: calc.Eyelet, WidthIn: 88, HeightIn: 92},
	}

	d := New()
	for _, in := range inputs {
		d.Add(in)
	}
	want := d.Totals()

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := New()
		perm := rng.Perm(len(inputs))
		for _, i := range perm {
			shuffled.Add(inputs[i])
		}
		got := shuffled.Totals()
		assert.InDelta(t, want.Quantity, got.Quantity, 1e-9)
		assert.InDelta(t, want.TrackFeet, got.TrackFeet, 1e-9)
		assert.InDelta(t, want.SQFT, got.SQFT, 1e-9)
		assert.Equal(t, want.Panels, got.Panels)
	}
}

func TestConcurrentMutation(t *testing.T) {
	d := New()

	// Overlapping requests from the same clerk hit one draft; run under
	// the race detector this doubles as a locking check.
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				e := d.Add(pleated("Window", 60, 84))
				d.Totals()
				d.Entries()
				if i%2 == 0 {
					assert.NoError(t, d.Remove(e.ID))
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4*25, d.Len())
}

func TestEditCursor(t *testing.T) {
	d := New()
	e := d.Add(pleated("A", 72, 84))

	assert.Nil(t, d.Editing())

	_, err := d.BeginEdit(e.ID)
	require.NoError(t, err)
	require.NotNil(t, d.Editing())
	assert.Equal(t, e.ID, *d.Editing())

	d.CancelEdit()
	assert.Nil(t, d.Editing())

	// Successful update while editing returns the cursor to idle.
	_, err = d.BeginEdit(e.ID)
	require.NoError(t, err)
	_, err = d.Update(e.ID, pleated("A", 60, 84), false, SheerInput{})
	require.NoError(t, err)
	assert.Nil(t, d.Editing())
}

func TestDeleteWhileEditingResetsCursor(t *testing.T) {
	d := New()
	e := d.Add(pleated("A", 72, 84))
	other := d.Add(pleated("B", 36, 60))

	_, err := d.BeginEdit(e.ID)
	require.NoError(t, err)
	require.NoError(t, d.Remove(e.ID))
	assert.Nil(t, d.Editing())

	// Deleting a different entry leaves the cursor alone.
	_, err = d.BeginEdit(other.ID)
	require.NoError(t, err)
	extra := d.Add(pleated("C", 20, 30))
	require.NoError(t, d.Remove(extra.ID))
	require.NotNil(t, d.Editing())
	assert.Equal(t, other.ID, *d.Editing())
}

func TestReset(t *testing.T) {
	d := New()
	d.Add(pleated("A", 72, 84))
	d.SetCustomer(&CustomerRef{Name: "Asha", Phone: "+14155550100"})
	e := d.Entries()[0]
	_, err := d.BeginEdit(e.ID)
	require.NoError(t, err)

	d.Reset()

	assert.Equal(t, 0, d.Len())
	assert.Nil(t, d.Customer())
	assert.Nil(t, d.Editing())
}
