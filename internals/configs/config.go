package configs

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Secret default hanya untuk development. Produksi wajib set QR_SECRET.
const devQRSecret = "skyhr-secret-2024"

var (
	AppEnv    string
	JWTSecret string
	QRSecret  string

	// "oss" atau "local", dipilih sekali saat startup
	StorageDriver string

	RekognitionRegion  string
	FaceMatchThreshold float32
	FaceSearchMaxFaces int

	DefaultGracePeriodMin    int
	DefaultEarlyToleranceMin int
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	AppEnv = GetEnv("APP_ENV", "development")
	JWTSecret = GetEnv("JWT_SECRET")
	QRSecret = loadQRSecret()
	StorageDriver = strings.ToLower(GetEnv("STORAGE_DRIVER", "local"))

	RekognitionRegion = GetEnv("AWS_REKOGNITION_REGION", GetEnv("AWS_REGION", "us-east-1"))
	FaceMatchThreshold = float32(envFloat("FACE_MATCH_THRESHOLD", 95))
	FaceSearchMaxFaces = envInt("FACE_SEARCH_MAX_FACES", 1)

	DefaultGracePeriodMin = envInt("ATTENDANCE_GRACE_PERIOD_MIN", 15)
	DefaultEarlyToleranceMin = envInt("ATTENDANCE_EARLY_TOLERANCE_MIN", 30)

	if JWTSecret == "" {
		if IsProduction() {
			log.Fatal("❌ JWT_SECRET belum diset! Server tidak boleh jalan tanpa secret di production.")
		}
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if StorageDriver != "oss" && StorageDriver != "local" {
		log.Fatalf("❌ STORAGE_DRIVER tidak dikenal: %q (pakai \"oss\" atau \"local\")", StorageDriver)
	}
}

func IsProduction() bool { return AppEnv == "production" }

// QR_SECRET disimpan base64 di ENV; kalau bukan base64 valid dipakai apa adanya.
// Tanpa ENV: production gagal start, development pakai konstanta dev.
func loadQRSecret() string {
	raw := strings.TrimSpace(os.Getenv("QR_SECRET"))
	if raw == "" {
		if GetEnv("APP_ENV", "development") == "production" {
			log.Fatal("❌ QR_SECRET belum diset! Server tidak boleh jalan tanpa secret di production.")
		}
		log.Println("⚠️ QR_SECRET belum diset, memakai secret development.")
		return devQRSecret
	}
	if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return string(decoded)
	}
	return raw
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return def
}
