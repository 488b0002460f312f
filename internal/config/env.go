package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBName      string
	JWTSecret   string
	NotifyURL   string
	CORSOrigins []string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "marketplace"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:      dbUser,
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBHost:      dbHost,
		DBName:      dbName,
		JWTSecret:   jwtSecret,
		NotifyURL:   strings.TrimSpace(os.Getenv("NOTIFY_WEBHOOK_URL")),
		CORSOrigins: origins,
	}
}
