package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	attendanceModel "skyhr_backend/internals/features/attendance/attendance/model"
	geofenceModel "skyhr_backend/internals/features/attendance/geofence/model"
	shiftModel "skyhr_backend/internals/features/attendance/shifts/model"
	orgModel "skyhr_backend/internals/features/organizations/model"
	visitorModel "skyhr_backend/internals/features/visitors/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	// ✅ Gunakan URL/DSN lengkap + statement_timeout
	// Catatan: kalau pakai PgBouncer, arahkan host/port ke PgBouncer dan biarkan PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=skyhr&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool siap dipakai
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// Migrate menjalankan AutoMigrate semua tabel + index unik untuk
// sesi check-in yang masih terbuka (guard duplicate check-in di level DB).
func Migrate() {
	if err := DB.AutoMigrate(
		&orgModel.OrganizationModel{},
		&geofenceModel.GeofenceModel{},
		&shiftModel.ShiftModel{},
		&shiftModel.AttendanceSettingModel{},
		&attendanceModel.AttendanceEventModel{},
		&visitorModel.VisitorModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrate: %v", err)
	}

	// Satu sesi terbuka per (user, org, hari). Read-then-write saja tidak
	// cukup saat dua check-in balapan; index ini yang jadi sumber kebenaran.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ux_attendance_open_session
		ON attendance_event (
			attendance_event_user_id,
			attendance_event_organization_id,
			((attendance_event_check_in AT TIME ZONE 'UTC')::date)
		)
		WHERE attendance_event_check_out IS NULL
		  AND attendance_event_deleted_at IS NULL
	`).Error; err != nil {
		log.Fatalf("❌ Gagal membuat index sesi terbuka: %v", err)
	}

	log.Println("✅ Migrasi selesai.")
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
