package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skyhr_backend/internals/features/biometrics/controller"
	bio "skyhr_backend/internals/features/biometrics/service"
	orgService "skyhr_backend/internals/features/organizations/service"
	"skyhr_backend/internals/storage"
)

// BiometricsUserRoutes — enrollment wajah oleh user login.
func BiometricsUserRoutes(user fiber.Router, db *gorm.DB, faces bio.FaceIndex, registry *orgService.CollectionRegistry, blob storage.BlobStorage) {
	ctrl := controller.NewBiometricsController(db, faces, registry, blob)

	biometrics := user.Group("/biometrics")
	biometrics.Post("/register-face", ctrl.RegisterFace)
}
