package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestOrderBeforeCreateDefaults(t *testing.T) {
	var o Order
	if err := o.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if o.ID == uuid.Nil {
		t.Error("expected a generated order id")
	}
	if len(o.Reference) != 8 {
		t.Fatalf("expected an 8-char reference, got %q", o.Reference)
	}
	for _, r := range o.Reference {
		if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r) {
			t.Errorf("unexpected reference character %q", r)
		}
	}
}

func TestOrderBeforeCreateKeepsPresetFields(t *testing.T) {
	o := Order{ID: uuid.New(), Reference: "AB12CD34"}
	id := o.ID
	if err := o.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if o.ID != id {
		t.Errorf("BeforeCreate replaced the preset id: %v", o.ID)
	}
	if o.Reference != "AB12CD34" {
		t.Errorf("BeforeCreate replaced the preset reference: %q", o.Reference)
	}
}
