package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skyhr_backend/internals/features/organizations/model"
)

// CollectionAdmin: lifecycle collection di oracle face-recognition.
// Implementasinya ada di feature biometrics.
type CollectionAdmin interface {
	CreateCollection(ctx context.Context, collectionID string) error
	DeleteCollection(ctx context.Context, collectionID string) error
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// CollectionIDFor: nama collection per tenant. Oracle hanya menerima
// alfanumerik + underscore.
func CollectionIDFor(organizationID string) string {
	return "skyhr_org_" + nonAlnum.ReplaceAllString(organizationID, "_")
}

// CollectionRegistry memetakan organization id → collection id.
// Dibuat lazily, di-cache in-process; sumber kebenarannya kolom
// organization_face_collection_id.
type CollectionRegistry struct {
	db    *gorm.DB
	faces CollectionAdmin

	mu    sync.Mutex
	cache map[string]string
}

func NewCollectionRegistry(db *gorm.DB, faces CollectionAdmin) *CollectionRegistry {
	return &CollectionRegistry{
		db:    db,
		faces: faces,
		cache: make(map[string]string),
	}
}

// Ensure mengembalikan collection id milik organization, membuatnya di
// oracle + menyimpannya di row organization bila belum ada.
func (r *CollectionRegistry) Ensure(ctx context.Context, organizationID string) (string, error) {
	r.mu.Lock()
	if id, ok := r.cache[organizationID]; ok {
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()

	var org model.OrganizationModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Take(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fiber.NewError(fiber.StatusNotFound, "Organization tidak ditemukan")
		}
		return "", err
	}

	if org.OrganizationFaceCollectionID != nil && *org.OrganizationFaceCollectionID != "" {
		r.remember(organizationID, *org.OrganizationFaceCollectionID)
		return *org.OrganizationFaceCollectionID, nil
	}

	collectionID := CollectionIDFor(organizationID)
	if err := r.faces.CreateCollection(ctx, collectionID); err != nil {
		log.Printf("[ERROR] create collection org=%s: %v", organizationID, err)
		return "", fmt.Errorf("create face collection: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&model.OrganizationModel{}).
		Where("organization_id = ?", organizationID).
		Update("organization_face_collection_id", collectionID).Error; err != nil {
		return "", err
	}

	r.remember(organizationID, collectionID)
	log.Printf("[INFO] face collection %s dibuat untuk org %s", collectionID, organizationID)
	return collectionID, nil
}

// Drop menghapus collection organization (dipanggil saat org dinonaktifkan).
// Tanpa collection dianggap sukses.
func (r *CollectionRegistry) Drop(ctx context.Context, organizationID string) error {
	var org model.OrganizationModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Take(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Organization tidak ditemukan")
		}
		return err
	}
	if org.OrganizationFaceCollectionID == nil || *org.OrganizationFaceCollectionID == "" {
		return nil
	}

	if err := r.faces.DeleteCollection(ctx, *org.OrganizationFaceCollectionID); err != nil {
		log.Printf("[ERROR] delete collection org=%s: %v", organizationID, err)
		return fmt.Errorf("delete face collection: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Model(&model.OrganizationModel{}).
		Where("organization_id = ?", organizationID).
		Update("organization_face_collection_id", nil).Error; err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.cache, organizationID)
	r.mu.Unlock()
	log.Printf("[INFO] face collection org %s dihapus", organizationID)
	return nil
}

func (r *CollectionRegistry) remember(orgID, collectionID string) {
	r.mu.Lock()
	r.cache[orgID] = collectionID
	r.mu.Unlock()
}
