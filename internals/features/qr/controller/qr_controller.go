package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"skyhr_backend/internals/configs"
	geofenceModel "skyhr_backend/internals/features/attendance/geofence/model"
	"skyhr_backend/internals/features/qr/dto"
	"skyhr_backend/internals/features/qr/service"
	helper "skyhr_backend/internals/helpers"
	"skyhr_backend/internals/storage"
)

type QrController struct {
	DB      *gorm.DB
	Storage storage.BlobStorage
}

func NewQrController(db *gorm.DB, blob storage.BlobStorage) *QrController {
	return &QrController{DB: db, Storage: blob}
}

/* ===================== REGISTER LOCATION ===================== */
// POST /api/a/qr/register-location
//
// Membuat QR PNG untuk satu geofence milik organization aktif,
// meng-upload-nya ke storage, dan mengembalikan URL publiknya.
func (ctrl *QrController) RegisterLocation(c *fiber.Ctx) error {
	orgID, err := helper.GetActiveOrgIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.RegisterLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// QR hanya boleh dibuat untuk geofence aktif milik org sendiri.
	var gf geofenceModel.GeofenceModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("geofence_id = ? AND geofence_organization_id = ?", req.LocationID, orgID).
		First(&gf).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Geofence tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}
	if !gf.GeofenceActive {
		return helper.Error(c, fiber.StatusBadRequest, "Geofence tidak aktif")
	}

	token, err := service.EncodePayload(service.QrPayload{
		OrganizationID: orgID,
		LocationID:     gf.GeofenceID.String(),
	}, configs.QRSecret)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	png, err := qrcode.Encode(token, qrcode.Medium, 512)
	if err != nil {
		return helper.FromFiberError(c, fmt.Errorf("generate QR gagal: %w", err))
	}

	fileName := fmt.Sprintf("qr-%s.png", gf.GeofenceID.String())
	res, err := ctrl.Storage.UploadBytes(c.UserContext(), "qr-codes", fileName, png, "image/png")
	if err != nil {
		return helper.FromFiberError(c, fmt.Errorf("upload QR gagal: %w", err))
	}

	return helper.JsonCreated(c, "QR berhasil dibuat", dto.RegisterLocationResponse{
		URL:      res.URL,
		FileName: res.Key,
	})
}

/* ===================== DEOBFUSCATE ===================== */
// POST /api/u/qr/deobfuscate
//
// Membuka payload QR dan mengembalikan isinya apa adanya. Validasi
// terhadap state geofence dilakukan di alur check-in, bukan di sini.
func (ctrl *QrController) Deobfuscate(c *fiber.Ctx) error {
	var req dto.DeobfuscateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	payload, err := service.DecodePayload(req.Payload, configs.QRSecret)
	if err != nil {
		var decodeErr *service.DecodeError
		if errors.As(err, &decodeErr) {
			return helper.Error(c, fiber.StatusBadRequest, "Payload QR tidak valid")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Payload QR berhasil dibaca", dto.DeobfuscateResponse{
		OrganizationID: payload.OrganizationID,
		LocationID:     payload.LocationID,
	})
}
