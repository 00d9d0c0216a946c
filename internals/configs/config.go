package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	// Spreadsheet konsumsi pelanggan (kolom REK_* per bulan)
	SheetIDCons string
	GIDCons     string

	// Spreadsheet LBKB (Laporan Bulanan Kontrol rumah kosong)
	SheetIDLBKB string
	GIDLBKB     string

	// Kredensial service account Google (file JSON atau isi JSON langsung)
	GoogleCredentialsFile string
	GoogleCredentialsJSON string

	// Timeout fetch sheet (header ringan vs tabel penuh)
	HeaderFetchTimeout time.Duration
	TableFetchTimeout  time.Duration

	// TTL cache hasil fetch CSV
	FetchCacheTTL time.Duration

	jakarta *time.Location
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

	SheetIDCons = GetEnv("SHEET_ID_CONS", "1mvYcJ8LMFkPwMN6SshPmRMwSwlkMuxmEHjm46dJyWDw")
	GIDCons = GetEnv("GID_CONS", "595704292")
	SheetIDLBKB = GetEnv("SHEET_ID_LBKB", "1TYAz6N3wAkk2NFu1tzPxvFyTeTioQLqFsZV78QDKMik")
	GIDLBKB = GetEnv("GID_LBKB", "1169371683")

	GoogleCredentialsFile = GetEnv("GOOGLE_SERVICE_ACCOUNT_FILE")
	GoogleCredentialsJSON = GetEnv("GOOGLE_SERVICE_ACCOUNT_JSON")

	HeaderFetchTimeout = getEnvDuration("HEADER_FETCH_TIMEOUT_SEC", 15)
	TableFetchTimeout = getEnvDuration("TABLE_FETCH_TIMEOUT_SEC", 30)
	FetchCacheTTL = getEnvDuration("FETCH_CACHE_TTL_SEC", 3600)

	if SheetIDCons == "" || SheetIDLBKB == "" {
		log.Println("❌ SHEET_ID_CONS / SHEET_ID_LBKB belum diset!")
	} else {
		log.Println("✅ Konfigurasi spreadsheet berhasil dimuat.")
	}

	if GoogleCredentialsFile == "" && GoogleCredentialsJSON == "" {
		log.Println("⚠️ Kredensial service account belum diset; fitur tulis & history tidak tersedia.")
	} else {
		log.Println("✅ Kredensial service account ditemukan.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvDuration(key string, defSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return time.Duration(parsed) * time.Second
		}
	}
	return time.Duration(defSeconds) * time.Second
}

// =======================
// WAKTU JAKARTA
// =======================

// Jakarta mengembalikan lokasi Asia/Jakarta (tzdata di-embed via time/tzdata).
func Jakarta() *time.Location {
	if jakarta == nil {
		loc, err := time.LoadLocation("Asia/Jakarta")
		if err != nil {
			log.Printf("⚠️ Gagal load Asia/Jakarta, fallback WIB tetap: %v", err)
			loc = time.FixedZone("WIB", 7*3600)
		}
		jakarta = loc
	}
	return jakarta
}

// NowJakarta mengembalikan waktu sekarang ber-timezone Asia/Jakarta.
func NowJakarta() time.Time {
	return time.Now().In(Jakarta())
}
