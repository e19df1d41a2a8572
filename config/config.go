package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TenantHeader is the request header carrying the tenant hint (id or slug).
func TenantHeader() string {
	return envOr("TENANT_HEADER", "X-Tenant-ID")
}

// DefaultTenant is the fallback tenant hint when the header is absent.
func DefaultTenant() string {
	return envOr("DEFAULT_TENANT_ID", "default")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database. MySQL in production; DB_DRIVER=sqlite selects
// SQLite (also what the tests run on).
func InitDB() (*gorm.DB, error) {
	driver := envOr("DB_DRIVER", "mysql")

	if driver == "sqlite" {
		path := envOr("DB_PATH", "restaurant.db")
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			envOr("DB_USER", "root"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_PORT", "3306"),
			envOr("DB_NAME", "restaurant"),
		)
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
