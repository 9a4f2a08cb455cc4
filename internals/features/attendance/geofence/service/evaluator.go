package service

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"skyhr_backend/internals/features/attendance/geofence/model"
)

const earthRadiusMeters = 6371000

// Evaluation: hasil uji keanggotaan geofence untuk satu titik.
type Evaluation struct {
	IsWithin       bool
	DistanceMeters float64
}

// Haversine: jarak great-circle dua titik (derajat desimal) dalam meter.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * (math.Pi / 180) }

	lat1Rad := toRad(lat1)
	lat2Rad := toRad(lat2)
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Evaluate menguji apakah (lat, lon) berada dalam geofence melingkar.
// Error 400 bila koordinat center tidak bisa diparse atau radius tidak positif.
func Evaluate(lat, lon float64, gf *model.GeofenceModel) (Evaluation, error) {
	centerLat, err := strconv.ParseFloat(gf.GeofenceCenterLatitude, 64)
	if err != nil {
		return Evaluation{}, fiber.NewError(fiber.StatusBadRequest, "Koordinat center geofence tidak valid")
	}
	centerLon, err := strconv.ParseFloat(gf.GeofenceCenterLongitude, 64)
	if err != nil {
		return Evaluation{}, fiber.NewError(fiber.StatusBadRequest, "Koordinat center geofence tidak valid")
	}
	if gf.GeofenceRadiusM <= 0 {
		return Evaluation{}, fiber.NewError(fiber.StatusBadRequest, "Radius geofence harus positif")
	}

	distance := Haversine(lat, lon, centerLat, centerLon)
	return Evaluation{
		IsWithin:       distance <= float64(gf.GeofenceRadiusM),
		DistanceMeters: distance,
	}, nil
}

// ParseCoordinate: lat/lon dari input klien (multipart/form = string).
func ParseCoordinate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Latitude/longitude tidak valid")
	}
	return v, nil
}
