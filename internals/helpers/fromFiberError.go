package helper

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error dari service/controller (biasanya *fiber.Error)
// menjadi response JSON konsisten via helper.Error.
// Error lain dianggap kegagalan kolaborator: di-log lengkap, klien hanya
// menerima pesan generik 500 (jangan bocorkan stack trace provider).
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] reqid=%v unhandled: %v", c.Locals("reqid"), err)
	return Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
