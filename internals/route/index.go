package routes

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skyhr_backend/internals/configs"
	attendanceRoute "skyhr_backend/internals/features/attendance/attendance/route"
	attendanceService "skyhr_backend/internals/features/attendance/attendance/service"
	geofenceRoute "skyhr_backend/internals/features/attendance/geofence/route"
	shiftRoute "skyhr_backend/internals/features/attendance/shifts/route"
	bioRoute "skyhr_backend/internals/features/biometrics/route"
	bioService "skyhr_backend/internals/features/biometrics/service"
	orgRoute "skyhr_backend/internals/features/organizations/route"
	orgService "skyhr_backend/internals/features/organizations/service"
	qrRoute "skyhr_backend/internals/features/qr/route"
	visitorRoute "skyhr_backend/internals/features/visitors/route"
	"skyhr_backend/internals/middlewares"
	"skyhr_backend/internals/middlewares/auth"
	"skyhr_backend/internals/storage"
)

// SetupRoutes merakit seluruh dependency (storage, oracle wajah,
// collection registry, orchestrator) lalu memasang route per prefix:
//
//	/api    → publik
//	/api/u  → user login (JWT)
//	/api/a  → owner/admin organization (JWT + role)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	blob, err := storage.NewFromEnv()
	if err != nil {
		log.Fatalf("[INIT] storage gagal diinisialisasi: %v", err)
	}

	faces, err := bioService.NewRekognitionFromEnv(context.Background())
	if err != nil {
		log.Fatalf("[INIT] rekognition gagal diinisialisasi: %v", err)
	}

	registry := orgService.NewCollectionRegistry(db, faces)
	store := attendanceService.NewGormStore(db)
	orchestrator := &attendanceService.Orchestrator{
		Events:      store,
		Shifts:      store,
		Geofences:   store,
		Faces:       faces,
		Collections: registry,
		Secret:      configs.QRSecret,
		Threshold:   configs.FaceMatchThreshold,
	}

	jwt := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	api := app.Group("/api")

	// ================== USER ==================
	user := api.Group("/u", jwt)
	orgRoute.OrganizationUserRoutes(user, db, registry)
	geofenceRoute.GeofenceUserRoutes(user, db)
	qrRoute.QrUserRoutes(user, db, blob)
	bioRoute.BiometricsUserRoutes(user, db, faces, registry, blob)
	attendanceRoute.AttendanceUserRoutes(user, db, orchestrator)
	visitorRoute.VisitorUserRoutes(user, db)

	// ================== ADMIN ==================
	admin := api.Group("/a", jwt, auth.IsOrgAdmin(), middlewares.AdminRateLimiter())
	orgRoute.OrganizationAdminRoutes(admin, db, registry)
	geofenceRoute.GeofenceAdminRoutes(admin, db)
	qrRoute.QrAdminRoutes(admin, db, blob)
	shiftRoute.ShiftAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db, orchestrator)
	visitorRoute.VisitorAdminRoutes(admin, db)
}
