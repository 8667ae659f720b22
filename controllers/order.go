package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"curtainpro-backend/blobstore"
	"curtainpro-backend/calc"
	"curtainpro-backend/config"
	"curtainpro-backend/draft"
	"curtainpro-backend/export"
	"curtainpro-backend/metrics"
	"curtainpro-backend/models"
	"curtainpro-backend/utils"
)

// SaveOrderInput carries the customer details confirmed at save time. The
// draft's entries are the order body; they are not re-sent here.
type SaveOrderInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Showroom string `json:"showroom"`
}

// SaveOrder snapshots the clerk's draft into a write-once order. Validation
// happens before any store mutation: a save that fails leaves no partial
// customer or order behind. Individual image uploads may fail without
// aborting the save; the core order record is all-or-nothing.
func SaveOrder(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}

	var input SaveOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if strings.TrimSpace(input.Name) == "" && strings.TrimSpace(input.Phone) == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Enter at least a name or phone to save order")
		return
	}

	entries := d.Entries()
	if len(entries) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Add at least one window before saving")
		return
	}

	// Upload images first; a failed attachment is skipped, never fatal.
	imageRefs := storeImages(c.Request.Context(), entries)

	var customer models.Customer
	var order models.Order

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		customer, _, err = FindOrCreateCustomer(tx, input.Name, input.Phone, input.Address, input.Showroom)
		if err != nil {
			return err
		}

		// A clerk editing a loaded customer can amend details at save time.
		if current := d.Customer(); current != nil && current.ID == customer.ID {
			customer.Name = strings.TrimSpace(input.Name)
			customer.Phone = utils.NormalizePhone(input.Phone)
			customer.Address = strings.TrimSpace(input.Address)
			customer.Showroom = input.Showroom
			if err := tx.Save(&customer).Error; err != nil {
				return err
			}
		}

		order = models.Order{
			ID:         uuid.New(),
			CustomerID: customer.ID,
			Entries:    make([]models.WindowEntry, len(entries)),
		}
		for i, e := range entries {
			var pairID *uuid.UUID
			if e.PairID != uuid.Nil {
				id := e.PairID
				pairID = &id
			}
			order.Entries[i] = models.WindowEntry{
				OrderID:      order.ID,
				Position:     i,
				WindowName:   e.WindowName,
				StitchType:   string(e.Stitch),
				WidthInches:  e.WidthIn,
				HeightInches: e.HeightIn,
				Lining:       string(e.Lining),
				Layer:        e.Layer,
				PairID:       pairID,
				ImageRefs:    imageRefs[i],
			}
		}

		return tx.Create(&order).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save order")
		return
	}

	metrics.OrdersSaved.Inc()

	d.SetCustomer(&draft.CustomerRef{
		ID:       customer.ID,
		Name:     customer.Name,
		Phone:    customer.Phone,
		Address:  customer.Address,
		Showroom: customer.Showroom,
	})

	// Confirmation SMS is best effort; the order is already committed.
	go notify.SendOrderConfirmation(customer, order)

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Order saved",
		"orderId":    order.ID,
		"reference":  order.Reference,
		"customerId": customer.ID,
	})
}

// storeImages uploads every attachment, returning one reference list per
// entry. Failed writes log and drop that image only.
func storeImages(ctx context.Context, entries []draft.Entry) []models.StringSlice {
	refs := make([]models.StringSlice, len(entries))
	for i, e := range entries {
		refs[i] = models.StringSlice{}
		for _, img := range e.Images {
			ref, err := imageStore.Put(ctx, img)
			if err != nil {
				log.Printf("Skipping image for entry %q: %v", e.WindowName, err)
				metrics.ImageWrites.WithLabelValues(backendLabel(), "error").Inc()
				continue
			}
			metrics.ImageWrites.WithLabelValues(backendLabel(), "ok").Inc()
			refs[i] = append(refs[i], ref)
		}
	}
	return refs
}

func backendLabel() string {
	if _, ok := imageStore.(*blobstore.S3Store); ok {
		return "s3"
	}
	return "file"
}

// ListOrdersForCustomer returns a customer's saved orders, newest first
func ListOrdersForCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).
		Where("customer_id = ?", customerUUID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// fetchOrder loads one order with its entries and customer.
func fetchOrder(c *gin.Context) (models.Order, models.Customer, bool) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
		return models.Order{}, models.Customer{}, false
	}

	var order models.Order
	if err := config.DB.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).
		Where("id = ?", orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return models.Order{}, models.Customer{}, false
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", order.CustomerID).First(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load order customer")
		return models.Order{}, models.Customer{}, false
	}

	return order, customer, true
}

// rebuildEntries turns persisted rows back into measured draft entries.
// Derived fields come from the calculator, not from anything stored: the raw
// width/height are the source of truth. Missing image blobs are skipped.
func rebuildEntries(ctx context.Context, stored []models.WindowEntry) []draft.Entry {
	entries := make([]draft.Entry, len(stored))
	for i, s := range stored {
		stitch := calc.Stitch(s.StitchType)

		var images [][]byte
		for _, ref := range s.ImageRefs {
			data, err := imageStore.Get(ctx, ref)
			if err != nil {
				log.Printf("Skipping image %s: %v", ref, err)
				continue
			}
			images = append(images, data)
		}

		pairID := uuid.Nil
		if s.PairID != nil {
			pairID = *s.PairID
		}

		entries[i] = draft.Entry{
			ID:           uuid.New(),
			WindowName:   s.WindowName,
			Stitch:       stitch,
			WidthIn:      s.WidthInches,
			HeightIn:     s.HeightInches,
			Lining:       draft.Lining(s.Lining),
			Layer:        s.Layer,
			PairID:       pairID,
			Measurements: calc.Measure(stitch, s.WidthInches, s.HeightInches),
			Images:       images,
		}
	}
	return entries
}

// LoadOrder replaces the clerk's working draft with a saved order's
// contents. The order itself stays untouched; the draft is a fresh mutable
// copy with derived fields recomputed from the stored raw inputs.
func LoadOrder(c *gin.Context) {
	d, ok := currentDraft(c)
	if !ok {
		return
	}

	order, customer, ok := fetchOrder(c)
	if !ok {
		return
	}

	entries := rebuildEntries(c.Request.Context(), order.Entries)
	d.Replace(entries, &draft.CustomerRef{
		ID:       customer.ID,
		Name:     customer.Name,
		Phone:    customer.Phone,
		Address:  customer.Address,
		Showroom: customer.Showroom,
	})

	c.JSON(http.StatusOK, draftView(d))
}

// OrderPDF renders the printable order form
func OrderPDF(c *gin.Context) {
	order, customer, ok := fetchOrder(c)
	if !ok {
		return
	}

	entries := rebuildEntries(c.Request.Context(), order.Entries)
	data, err := export.RenderPDF(draft.CustomerRef{
		ID:       customer.ID,
		Name:     customer.Name,
		Phone:    customer.Phone,
		Address:  customer.Address,
		Showroom: customer.Showroom,
	}, entries, order.Reference)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render order form")
		return
	}
	metrics.DocumentsRendered.WithLabelValues("pdf").Inc()

	filename := fmt.Sprintf("Order_%s.pdf", strings.ReplaceAll(customer.Name, " ", "_"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// OrderXLSX exports the order as a spreadsheet
func OrderXLSX(c *gin.Context) {
	order, customer, ok := fetchOrder(c)
	if !ok {
		return
	}

	entries := rebuildEntries(c.Request.Context(), order.Entries)
	data, err := export.RenderXLSX(draft.CustomerRef{
		ID:       customer.ID,
		Name:     customer.Name,
		Phone:    customer.Phone,
		Address:  customer.Address,
		Showroom: customer.Showroom,
	}, entries)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render spreadsheet")
		return
	}
	metrics.DocumentsRendered.WithLabelValues("xlsx").Inc()

	filename := fmt.Sprintf("Order_%s.xlsx", strings.ReplaceAll(customer.Name, " ", "_"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
