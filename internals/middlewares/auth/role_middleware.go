package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "skyhr_backend/internals/helpers"
)

// IsOrgAdmin menolak request yang bukan owner/admin pada organization aktif.
// Dipasang di group /api/a — mark-absences, update-status, CRUD geofence,
// registrasi QR semuanya lewat sini.
func IsOrgAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := helper.GetUserIDFromToken(c); err != nil {
			return err
		}
		if _, err := helper.GetActiveOrgIDFromToken(c); err != nil {
			return err
		}
		if !helper.IsPrivilegedRole(helper.GetOrgRoleFromToken(c)) {
			return fiber.NewError(fiber.StatusForbidden, "Hanya owner/admin organization yang boleh mengakses")
		}
		return c.Next()
	}
}
