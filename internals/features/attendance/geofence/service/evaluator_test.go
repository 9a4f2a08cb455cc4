package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyhr_backend/internals/features/attendance/geofence/model"
)

func circularGeofence(lat, lon string, radiusM int) *model.GeofenceModel {
	return &model.GeofenceModel{
		GeofenceName:            "Kantor Pusat",
		GeofenceType:            model.GeofenceTypeCircular,
		GeofenceCenterLatitude:  lat,
		GeofenceCenterLongitude: lon,
		GeofenceRadiusM:         radiusM,
		GeofenceActive:          true,
	}
}

func TestHaversine_KnownDistances(t *testing.T) {
	// Titik identik.
	assert.Zero(t, Haversine(-6.2, 106.8, -6.2, 106.8))

	// 0.008° bujur di ekuator ≈ 890 m.
	d := Haversine(0, 0, 0, 0.008)
	assert.InDelta(t, 890, d, 5)

	// 0.01° bujur di ekuator ≈ 1113 m.
	d = Haversine(0, 0, 0, 0.01)
	assert.InDelta(t, 1113, d, 5)

	// Jakarta (Monas) → Bandung (Gedung Sate) ≈ 118 km.
	d = Haversine(-6.1754, 106.8272, -6.9025, 107.6186)
	assert.InDelta(t, 118000, d, 2000)
}

func TestEvaluate_WithinRadius(t *testing.T) {
	gf := circularGeofence("0", "0", 1000)

	eval, err := Evaluate(0, 0.008, gf)
	require.NoError(t, err)
	assert.True(t, eval.IsWithin)
	assert.InDelta(t, 890, eval.DistanceMeters, 5)
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	gf := circularGeofence("0", "0", 1000)

	eval, err := Evaluate(0, 0.01, gf)
	require.NoError(t, err)
	assert.False(t, eval.IsWithin)
	assert.InDelta(t, 1113, eval.DistanceMeters, 5)
}

func TestEvaluate_BoundaryIsWithin(t *testing.T) {
	// within = jarak <= radius, bukan <.
	gf := circularGeofence("0", "0", 1113)

	eval, err := Evaluate(0, 0.01, gf)
	require.NoError(t, err)
	assert.True(t, eval.IsWithin)
}

func TestEvaluate_InvalidCenter(t *testing.T) {
	gf := circularGeofence("bukan-angka", "106.8", 500)

	_, err := Evaluate(-6.2, 106.8, gf)
	assert.Error(t, err)
}

func TestEvaluate_NonPositiveRadius(t *testing.T) {
	_, err := Evaluate(0, 0, circularGeofence("0", "0", 0))
	assert.Error(t, err)

	_, err = Evaluate(0, 0, circularGeofence("0", "0", -10))
	assert.Error(t, err)
}

func TestParseCoordinate(t *testing.T) {
	v, err := ParseCoordinate("-6.1754")
	require.NoError(t, err)
	assert.InDelta(t, -6.1754, v, 1e-9)

	_, err = ParseCoordinate("")
	assert.Error(t, err)

	_, err = ParseCoordinate("enam koma dua")
	assert.Error(t, err)
}
