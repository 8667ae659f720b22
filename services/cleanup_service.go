// services/cleanup_service.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"curtainpro-backend/blobstore"
	"curtainpro-backend/models"
)

// CleanupService removes image blobs that no saved order references.
// Orphans appear when a clerk attaches images to a draft and then resets it,
// or when an order save writes some images before failing validation of a
// later one.
type CleanupService struct {
	db    *gorm.DB
	store blobstore.Store
}

func NewCleanupService(db *gorm.DB, store blobstore.Store) *CleanupService {
	return &CleanupService{db: db, store: store}
}

// StartScheduler sweeps orphaned images daily at 2 AM.
func (s *CleanupService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 2 * * *", func() {
		s.SweepOrphanedImages()
	})

	c.Start()
	log.Println("Image cleanup scheduler started")
}

// SweepOrphanedImages deletes every stored blob whose reference is absent
// from all persisted window entries.
func (s *CleanupService) SweepOrphanedImages() {
	log.Println("Starting orphaned image sweep...")
	start := time.Now()
	ctx := context.Background()

	var entries []models.WindowEntry
	if err := s.db.Select("image_refs").Find(&entries).Error; err != nil {
		log.Printf("Image sweep: failed to load entry references: %v", err)
		return
	}

	referenced := make(map[string]bool)
	for _, e := range entries {
		for _, ref := range e.ImageRefs {
			referenced[ref] = true
		}
	}

	stored, err := s.store.List(ctx)
	if err != nil {
		log.Printf("Image sweep: failed to list blobs: %v", err)
		return
	}

	removed := 0
	for _, ref := range stored {
		if referenced[ref] {
			continue
		}
		if err := s.store.Delete(ctx, ref); err != nil {
			log.Printf("Image sweep: failed to delete %s: %v", ref, err)
			continue
		}
		removed++
	}

	log.Printf("Image sweep completed: %d orphaned of %d stored, took %v",
		removed, len(stored), time.Since(start))
}
