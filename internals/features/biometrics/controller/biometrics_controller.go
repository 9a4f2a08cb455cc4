package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bio "skyhr_backend/internals/features/biometrics/service"
	orgService "skyhr_backend/internals/features/organizations/service"
	helper "skyhr_backend/internals/helpers"
	"skyhr_backend/internals/storage"
)

const maxFaceImageBytes = 5 << 20

type BiometricsController struct {
	DB       *gorm.DB
	Faces    bio.FaceIndex
	Registry *orgService.CollectionRegistry
	Storage  storage.BlobStorage
}

func NewBiometricsController(db *gorm.DB, faces bio.FaceIndex, registry *orgService.CollectionRegistry, blob storage.BlobStorage) *BiometricsController {
	return &BiometricsController{DB: db, Faces: faces, Registry: registry, Storage: blob}
}

/* ===================== REGISTER FACE ===================== */
// POST /api/u/biometrics/register-face (multipart/form-data, file "image")
//
// Enrollment wajah user login: foto dinormalisasi (JPEG, max 1280px),
// diarsipkan ke storage, lalu di-index ke collection organization.
func (ctrl *BiometricsController) RegisterFace(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Foto wajah wajib dikirim di field 'image'")
	}
	if fileHeader.Size > maxFaceImageBytes {
		return helper.Error(c, fiber.StatusBadRequest, "Ukuran foto maksimal 5MB")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Foto wajah tidak bisa dibaca")
	}
	raw, err := io.ReadAll(io.LimitReader(f, maxFaceImageBytes+1))
	f.Close()
	if err != nil || len(raw) > maxFaceImageBytes {
		return helper.Error(c, fiber.StatusBadRequest, "Foto wajah tidak bisa dibaca")
	}

	normalized, err := storage.NormalizeFaceImage(raw)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format foto tidak didukung")
	}

	collectionID, err := ctrl.Registry.Ensure(c.UserContext(), orgID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Arsip foto enrollment, lalu index ke oracle.
	res, err := ctrl.Storage.UploadBytes(c.UserContext(), "faces", userID+".jpg", normalized, "image/jpeg")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctrl.Faces.IndexFace(c.UserContext(), collectionID, userID, normalized); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Wajah berhasil didaftarkan", fiber.Map{
		"face_url":      res.URL,
		"collection_id": collectionID,
	})
}
