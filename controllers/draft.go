package controllers

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"curtainpro-backend/calc"
	"curtainpro-backend/draft"
	"curtainpro-backend/utils"
)

// EntryInput defines the expected JSON structure for adding or updating a
// window entry. Negative dimensions are rejected here; the calculator
// assumes non-negative inputs.
type EntryInput struct {
	WindowName   string   `json:"windowName"`
	StitchType   string   `json:"stitchType" binding:"required"`
	WidthInches  *float64 `json:"widthInches" binding:"required"`
	HeightInches *float64 `json:"heightInches" binding:"required"`
	Lining       string   `json:"lining"`

	DoubleLayer bool `json:"doubleLayer"`
	// Sheer overrides apply to the second layer only; omitted fields
	// mirror the main layer.
	SheerStitchType   string   `json:"sheerStitchType"`
	SheerWidthInches  *float64 `json:"sheerWidthInches"`
	SheerHeightInches *float64 `json:"sheerHeightInches"`

	// Base64-encoded image attachments. On update, an empty list keeps
	// the entry's existing images.
	Images []string `json:"images"`
}

func (in *EntryInput) toDraftInput(c *gin.Context) (draft.Input, draft.SheerInput, bool) {
	if *in.WidthInches < 0 || *in.HeightInches < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Width and height must be non-negative")
		return draft.Input{}, draft.SheerInput{}, false
	}
	if in.SheerWidthInches != nil && *in.SheerWidthInches < 0 ||
		in.SheerHeightInches != nil && *in.SheerHeightInches < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Sheer width and height must be non-negative")
		return draft.Input{}, draft.SheerInput{}, false
	}

	images := make([][]byte, 0, len(in.Images))
	for _, enc := range in.Images {
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid base64 image data")
			return draft.Input{}, draft.SheerInput{}, false
		}
		images = append(images, data)
	}

	stitch := calc.Stitch(in.StitchType)
	if !stitch.Valid() {
		// Unknown stitch types still measure (to zero); flag them so a
		// renamed or misspelled type is visible in the logs.
		log.Printf("Unknown stitch type %q; measurements will be zero", in.StitchType)
	}

	input := draft.Input{
		WindowName: in.WindowName,
		Stitch:     stitch,
		WidthIn:    *in.WidthInches,
		HeightIn:   *in.HeightInches,
		Lining:     draft.Lining(in.Lining),
		Images:     images,
	}
	sheer := draft.SheerInput{
		Stitch: calc.Stitch(in.SheerStitchType),
	}
	if in.SheerWidthInches != nil {
		sheer.WidthIn = *in.SheerWidthInches
	}
	if in.SheerHeightInches != nil {
		sheer.HeightIn = *in.SheerHeightInches
	}
	return input, sheer, true
}

// draftView is the JSON shape of the working draft: entries, totals and the
// edit cursor, plus the attached customer when one is loaded.
func draftView(d *draft.Draft) gin.H {
	entries := d.Entries()
	views := make([]gin.H, len(entries))
	for i, e := range entries {
		views[i] = entryView(e)
	}
	return gin.H{
		"entries":  views,
		"totals":   d.Totals(),
		"editing":  d.Editing(),
		"customer": d.Customer(),
	}
}

func entryView(e draft.Entry) gin.H {
	return gin.H{
		"id":           e.ID,
		"windowName":   e.WindowName,
		"stitchType":   e.Stitch,
		"widthInches":  e.WidthIn,
		"heightInches": e.HeightIn,
		"lining":       e.Lining,
		"layer":        e.Layer,
		"pairId":       e.PairID,
		"quantity":     e.Quantity,
		"trackFeet":    e.TrackFeet,
		"sqft":         e.SQFT,
		"panels":       e.Panels,
		"imageCount":   len(e.Images),
	}
}

// GetDraft returns the clerk's working draft
func GetDraft(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draftView(d))
}

// AddEntry appends a window (or a double-layer pair) to the draft
func AddEntry(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}

	var input EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	in, sheer, ok := input.toDraftInput(c)
	if !ok {
		return
	}

	if input.DoubleLayer {
		d.AddPair(in, sheer)
	} else {
		d.Add(in)
	}

	c.JSON(http.StatusCreated, draftView(d))
}

// UpdateEntry replaces a window entry, recomputing its measurements
func UpdateEntry(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	var input EntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	in, sheer, ok := input.toDraftInput(c)
	if !ok {
		return
	}

	if _, err := d.Update(entryID, in, input.DoubleLayer, sheer); err != nil {
		if errors.Is(err, draft.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Entry not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update entry")
		}
		return
	}

	c.JSON(http.StatusOK, draftView(d))
}

// DeleteEntry removes one window entry. Layer siblings are not cascaded.
func DeleteEntry(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	if err := d.Remove(entryID); err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Entry not found")
		return
	}

	c.JSON(http.StatusOK, draftView(d))
}

// BeginEditEntry moves the draft's edit cursor onto an entry
func BeginEditEntry(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid entry ID format")
		return
	}

	entry, err := d.BeginEdit(entryID)
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Entry not found")
		return
	}

	c.JSON(http.StatusOK, entryView(entry))
}

// CancelEditEntry returns the edit cursor to idle
func CancelEditEntry(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}
	d.CancelEdit()
	c.JSON(http.StatusOK, draftView(d))
}

// ResetDraft clears the working entries and the in-progress customer
func ResetDraft(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}
	d.Reset()
	c.JSON(http.StatusOK, draftView(d))
}
