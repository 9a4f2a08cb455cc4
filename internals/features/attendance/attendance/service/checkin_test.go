package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyhr_backend/internals/features/attendance/attendance/model"
	geofenceModel "skyhr_backend/internals/features/attendance/geofence/model"
	shiftModel "skyhr_backend/internals/features/attendance/shifts/model"
	bio "skyhr_backend/internals/features/biometrics/service"
	qrService "skyhr_backend/internals/features/qr/service"
)

const (
	checkinSecret = "secret-checkin-uji"
	orgID         = "org_1"
	userID        = "user_1"
)

/* ---------------- fakes ---------------- */

type fakeEventStore struct {
	open      *model.AttendanceEventModel
	created   []*model.AttendanceEventModel
	createErr error
}

func (f *fakeEventStore) FindOpenSession(_ context.Context, _, _ string, _ time.Time) (*model.AttendanceEventModel, error) {
	return f.open, nil
}

func (f *fakeEventStore) CreateEvent(_ context.Context, ev *model.AttendanceEventModel) error {
	if f.createErr != nil {
		return f.createErr
	}
	ev.AttendanceEventID = uuid.New()
	f.created = append(f.created, ev)
	return nil
}

func (f *fakeEventStore) CloseSession(_ context.Context, eventID uuid.UUID, _ string, checkOut time.Time, isWithin bool, distanceM int) (*model.AttendanceEventModel, error) {
	closed := *f.open
	closed.AttendanceEventCheckOut = &checkOut
	closed.AttendanceEventIsWithinGeofence = &isWithin
	closed.AttendanceEventDistanceToGeofence = &distanceM
	return &closed, nil
}

func (f *fakeEventStore) UpdateStatus(_ context.Context, _ uuid.UUID, _, status string, notes *string) (*model.AttendanceEventModel, error) {
	ev := *f.open
	ev.AttendanceEventStatus = status
	if notes != nil {
		ev.AttendanceEventNotes = notes
	}
	return &ev, nil
}

func (f *fakeEventStore) HasEventOn(_ context.Context, user, _ string, _ time.Time) (bool, error) {
	for _, ev := range f.created {
		if ev.AttendanceEventUserID == user {
			return true, nil
		}
	}
	return false, nil
}

type fakeShiftStore struct {
	shift *shiftModel.ShiftModel
	ended []shiftModel.ShiftModel
	grace int
	early int
}

func (f *fakeShiftStore) ActiveShift(_ context.Context, _, _ string, _ time.Time) (*shiftModel.ShiftModel, error) {
	return f.shift, nil
}

func (f *fakeShiftStore) Settings(_ context.Context, _ string) (int, int, error) {
	return f.grace, f.early, nil
}

func (f *fakeShiftStore) ShiftsEndedBefore(_ context.Context, _ string, _ time.Time) ([]shiftModel.ShiftModel, error) {
	return f.ended, nil
}

type fakeGeofenceStore struct {
	gf *geofenceModel.GeofenceModel
}

func (f *fakeGeofenceStore) FindActive(_ context.Context, _, _ string) (*geofenceModel.GeofenceModel, error) {
	return f.gf, nil
}

type fakeFaceMatcher struct {
	match *bio.FaceMatch
}

func (f *fakeFaceMatcher) SearchFace(_ context.Context, _ string, _ []byte) (*bio.FaceMatch, error) {
	return f.match, nil
}

type fakeResolver struct{}

func (fakeResolver) Ensure(_ context.Context, org string) (string, error) {
	return "skyhr_org_" + org, nil
}

/* ---------------- helpers ---------------- */

func officeGeofence() *geofenceModel.GeofenceModel {
	return &geofenceModel.GeofenceModel{
		GeofenceID:              uuid.New(),
		GeofenceOrganizationID:  orgID,
		GeofenceName:            "Kantor Pusat",
		GeofenceType:            geofenceModel.GeofenceTypeCircular,
		GeofenceCenterLatitude:  "0",
		GeofenceCenterLongitude: "0",
		GeofenceRadiusM:         1000,
		GeofenceActive:          true,
	}
}

func validToken(t *testing.T, org string, gf *geofenceModel.GeofenceModel) string {
	t.Helper()
	token, err := qrService.EncodePayload(qrService.QrPayload{
		OrganizationID: org,
		LocationID:     gf.GeofenceID.String(),
	}, checkinSecret)
	require.NoError(t, err)
	return token
}

func newOrchestrator(events *fakeEventStore, shifts *fakeShiftStore, gf *geofenceModel.GeofenceModel, match *bio.FaceMatch) *Orchestrator {
	return &Orchestrator{
		Events:      events,
		Shifts:      shifts,
		Geofences:   &fakeGeofenceStore{gf: gf},
		Faces:       &fakeFaceMatcher{match: match},
		Collections: fakeResolver{},
		Secret:      checkinSecret,
		Threshold:   95,
		Now:         func() time.Time { return time.Date(2026, time.March, 2, 9, 5, 0, 0, time.UTC) },
	}
}

func fiberStatus(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

/* ---------------- tests ---------------- */

func TestCheckIn_Success(t *testing.T) {
	gf := officeGeofence()
	events := &fakeEventStore{}
	shifts := &fakeShiftStore{grace: 15, early: 30}
	orch := newOrchestrator(events, shifts, gf, &bio.FaceMatch{ExternalID: userID, Similarity: 98})

	ev, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID:    userID,
		OrgID:     orgID,
		QrToken:   validToken(t, orgID, gf),
		Latitude:  0,
		Longitude: 0,
		Image:     []byte("jpeg"),
	})
	require.NoError(t, err)
	require.Len(t, events.created, 1)

	assert.Equal(t, userID, ev.AttendanceEventUserID)
	assert.Equal(t, orgID, ev.AttendanceEventOrganizationID)
	assert.True(t, ev.AttendanceEventIsVerified)
	assert.Equal(t, model.SourceQrFace, ev.AttendanceEventSource)

	require.NotNil(t, ev.AttendanceEventIsWithinGeofence)
	assert.True(t, *ev.AttendanceEventIsWithinGeofence)
	require.NotNil(t, ev.AttendanceEventDistanceToGeofence)
	assert.Equal(t, 0, *ev.AttendanceEventDistanceToGeofence)

	require.NotNil(t, ev.AttendanceEventFaceConfidence)
	assert.Equal(t, "98", *ev.AttendanceEventFaceConfidence)

	// Tanpa shift: on_time + catatan.
	assert.Equal(t, model.StatusOnTime, ev.AttendanceEventStatus)
	require.NotNil(t, ev.AttendanceEventNotes)
	assert.Contains(t, *ev.AttendanceEventNotes, "Tidak ada shift")
}

func TestCheckIn_InvalidQr(t *testing.T) {
	orch := newOrchestrator(&fakeEventStore{}, &fakeShiftStore{}, officeGeofence(), &bio.FaceMatch{ExternalID: userID, Similarity: 99})

	_, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID: userID, OrgID: orgID, QrToken: "zzzz-bukan-hex",
	})
	assert.Equal(t, fiber.StatusBadRequest, fiberStatus(t, err))
}

func TestCheckIn_QrFromOtherOrg(t *testing.T) {
	gf := officeGeofence()
	orch := newOrchestrator(&fakeEventStore{}, &fakeShiftStore{}, gf, &bio.FaceMatch{ExternalID: userID, Similarity: 99})

	_, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID:  userID,
		OrgID:   orgID,
		QrToken: validToken(t, "org_lain", gf),
	})
	assert.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))
}

func TestCheckIn_DuplicateOpenSession(t *testing.T) {
	gf := officeGeofence()
	events := &fakeEventStore{open: &model.AttendanceEventModel{AttendanceEventUserID: userID}}
	orch := newOrchestrator(events, &fakeShiftStore{}, gf, &bio.FaceMatch{ExternalID: userID, Similarity: 99})

	_, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID: userID, OrgID: orgID, QrToken: validToken(t, orgID, gf),
	})
	assert.Equal(t, fiber.StatusConflict, fiberStatus(t, err))
	assert.Empty(t, events.created)
}

func TestCheckIn_DuplicateRace(t *testing.T) {
	// Dua request lolos cek duplikasi bersamaan; yang kalah kena unique
	// index dan harus tetap dilaporkan sebagai conflict.
	gf := officeGeofence()
	events := &fakeEventStore{createErr: ErrDuplicateOpenSession}
	orch := newOrchestrator(events, &fakeShiftStore{}, gf, &bio.FaceMatch{ExternalID: userID, Similarity: 99})

	_, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID: userID, OrgID: orgID, QrToken: validToken(t, orgID, gf),
	})
	assert.Equal(t, fiber.StatusConflict, fiberStatus(t, err))
}

func TestCheckIn_GeofenceNotFound(t *testing.T) {
	gf := officeGeofence()
	orch := newOrchestrator(&fakeEventStore{}, &fakeShiftStore{}, gf, &bio.FaceMatch{ExternalID: userID, Similarity: 99})
	orch.Geofences = &fakeGeofenceStore{gf: nil}

	_, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID: userID, OrgID: orgID, QrToken: validToken(t, orgID, gf),
	})
	assert.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
}

func TestCheckIn_FaceGates(t *testing.T) {
	gf := officeGeofence()

	cases := []struct {
		name  string
		match *bio.FaceMatch
	}{
		{"wajah tidak dikenali", nil},
		{"wajah milik user lain", &bio.FaceMatch{ExternalID: "user_lain", Similarity: 99}},
		{"similarity di bawah ambang", &bio.FaceMatch{ExternalID: userID, Similarity: 94.9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := &fakeEventStore{}
			orch := newOrchestrator(events, &fakeShiftStore{}, gf, tc.match)

			_, err := orch.CheckIn(context.Background(), CheckInInput{
				UserID: userID, OrgID: orgID, QrToken: validToken(t, orgID, gf),
			})
			assert.Equal(t, fiber.StatusForbidden, fiberStatus(t, err))
			assert.Empty(t, events.created)
		})
	}
}

func TestCheckIn_OutOfBoundsOverridesStatus(t *testing.T) {
	gf := officeGeofence()
	events := &fakeEventStore{}
	// Shift 09:00, check-in 09:05 → seharusnya on_time, tapi posisi di
	// luar radius meng-override status.
	shifts := &fakeShiftStore{
		shift: &shiftModel.ShiftModel{
			ShiftID:           uuid.New(),
			ShiftUserID:       userID,
			ShiftWeekdays:     []int32{0, 1, 2, 3, 4, 5, 6},
			ShiftStartMinutes: 9 * 60,
			ShiftEndMinutes:   17 * 60,
			ShiftActive:       true,
		},
		grace: 15,
		early: 30,
	}
	orch := newOrchestrator(events, shifts, gf, &bio.FaceMatch{ExternalID: userID, Similarity: 99})

	ev, err := orch.CheckIn(context.Background(), CheckInInput{
		UserID:    userID,
		OrgID:     orgID,
		QrToken:   validToken(t, orgID, gf),
		Latitude:  0,
		Longitude: 0.01, // ≈1113 m, radius 1000 m
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusOutOfBounds, ev.AttendanceEventStatus)
	require.NotNil(t, ev.AttendanceEventIsWithinGeofence)
	assert.False(t, *ev.AttendanceEventIsWithinGeofence)
	require.NotNil(t, ev.AttendanceEventNotes)
	assert.Contains(t, *ev.AttendanceEventNotes, "from geofence (radius: 1000m)")
	require.NotNil(t, ev.AttendanceEventShiftID)
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	orch := newOrchestrator(&fakeEventStore{}, &fakeShiftStore{}, officeGeofence(), nil)

	_, _, err := orch.CheckOut(context.Background(), CheckOutInput{UserID: userID, OrgID: orgID})
	assert.Equal(t, fiber.StatusNotFound, fiberStatus(t, err))
}

func TestCheckOut_ClosesSessionWithDuration(t *testing.T) {
	checkIn := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	events := &fakeEventStore{
		open: &model.AttendanceEventModel{
			AttendanceEventID:             uuid.New(),
			AttendanceEventUserID:         userID,
			AttendanceEventOrganizationID: orgID,
			AttendanceEventCheckIn:        checkIn,
		},
	}
	orch := newOrchestrator(events, &fakeShiftStore{}, officeGeofence(), nil)
	orch.Now = func() time.Time { return checkIn.Add(8 * time.Hour) }

	ev, duration, err := orch.CheckOut(context.Background(), CheckOutInput{
		UserID:    userID,
		OrgID:     orgID,
		Latitude:  0,
		Longitude: 0.001,
	})
	require.NoError(t, err)
	require.NotNil(t, ev.AttendanceEventCheckOut)
	assert.Equal(t, 480, duration)

	// Checkout dicatat sebagai dalam area tanpa evaluasi ulang geofence.
	require.NotNil(t, ev.AttendanceEventIsWithinGeofence)
	assert.True(t, *ev.AttendanceEventIsWithinGeofence)
	require.NotNil(t, ev.AttendanceEventDistanceToGeofence)
	assert.Zero(t, *ev.AttendanceEventDistanceToGeofence)
}

func TestMarkAbsences_Idempotent(t *testing.T) {
	shiftA := shiftModel.ShiftModel{
		ShiftID:           uuid.New(),
		ShiftUserID:       "user_a",
		ShiftWeekdays:     []int32{0, 1, 2, 3, 4, 5, 6},
		ShiftStartMinutes: 8 * 60,
		ShiftEndMinutes:   16 * 60,
		ShiftActive:       true,
	}
	shiftB := shiftA
	shiftB.ShiftID = uuid.New()
	shiftB.ShiftUserID = "user_b"

	events := &fakeEventStore{}
	shifts := &fakeShiftStore{ended: []shiftModel.ShiftModel{shiftA, shiftB}}
	orch := newOrchestrator(events, shifts, officeGeofence(), nil)
	orch.Now = func() time.Time { return time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC) }

	marked, err := orch.MarkAbsences(context.Background(), orgID)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)
	require.Len(t, events.created, 2)

	for _, ev := range events.created {
		assert.Equal(t, model.StatusAbsent, ev.AttendanceEventStatus)
		assert.Equal(t, model.SourceSystem, ev.AttendanceEventSource)
		assert.False(t, ev.AttendanceEventIsVerified)
		require.NotNil(t, ev.AttendanceEventCheckOut)
	}

	// Sweep kedua tidak menggandakan event.
	marked, err = orch.MarkAbsences(context.Background(), orgID)
	require.NoError(t, err)
	assert.Zero(t, marked)
	assert.Len(t, events.created, 2)
}
