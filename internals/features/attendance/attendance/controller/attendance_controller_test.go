package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyhr_backend/internals/features/attendance/attendance/service"
	helper "skyhr_backend/internals/helpers"
)

// App minimal dengan locals auth terisi; orchestrator tidak pernah
// tersentuh pada jalur validasi input.
func checkOutTestApp() *fiber.App {
	ctrl := NewAttendanceController(nil, &service.Orchestrator{})

	app := fiber.New()
	app.Post("/check-out", func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, "user_1")
		c.Locals(helper.LocActiveOrgID, "org_1")
		return ctrl.CheckOut(c)
	})
	return app
}

func postCheckOut(t *testing.T, app *fiber.App, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/check-out", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCheckOut_RequiresCoordinates(t *testing.T) {
	app := checkOutTestApp()

	cases := []struct {
		name string
		form url.Values
	}{
		{"tanpa body", url.Values{}},
		{"hanya latitude", url.Values{"latitude": {"-6.2"}}},
		{"hanya longitude", url.Values{"longitude": {"106.8"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postCheckOut(t, app, tc.form)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "BAD_REQUEST")
			assert.Contains(t, string(body), "Latitude dan longitude wajib dikirim")
		})
	}
}

func TestCheckOut_RejectsNonNumericCoordinates(t *testing.T) {
	app := checkOutTestApp()

	resp := postCheckOut(t, app, url.Values{
		"latitude":  {"enam koma dua"},
		"longitude": {"106.8"},
	})
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "BAD_REQUEST")
}
