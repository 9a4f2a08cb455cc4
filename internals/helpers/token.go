package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals yang di-hydrate oleh middleware auth. User & organization id
// bertipe text (mengikuti provider auth), bukan UUID.
const (
	LocUserID      = "user_id"
	LocActiveOrgID = "active_organization_id"
	LocOrgRole     = "organization_role"
)

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	default:
		return ""
	}
}

// Ambil user_id dari c.Locals. Return 401 kalau belum login.
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	id := localString(c, LocUserID)
	if id == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	return id, nil
}

// Ambil organization aktif dari c.Locals. Semua operasi attendance/geofence
// wajib punya organization scope; tanpa ini → 401.
func GetActiveOrgIDFromToken(c *fiber.Ctx) (string, error) {
	id := localString(c, LocActiveOrgID)
	if id == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Organization aktif tidak ditemukan di token")
	}
	return id, nil
}

// Role user pada organization aktif ("owner" | "admin" | "member").
func GetOrgRoleFromToken(c *fiber.Ctx) string {
	return localString(c, LocOrgRole)
}

func IsPrivilegedRole(role string) bool {
	return role == "owner" || role == "admin"
}
