package config

import (
	"os"

	"cafedir/media"
)

// Config collects every environment-backed setting the server needs.
type Config struct {
	Port          string
	AllowedOrigin string
	AdminUsername string
	AdminPassword string
	CafesFile     string
	UsersFile     string
	Media         media.Config
}

// Load reads the configuration from the environment. Defaults match local
// development; the admin credential pair and media-host settings have no
// usable defaults and must be set in any real deployment.
func Load() Config {
	return Config{
		Port:          getEnv("PORT", "4000"),
		AllowedOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		CafesFile:     getEnv("CAFES_FILE", "data/cafes.json"),
		UsersFile:     getEnv("USERS_FILE", "data/users.json"),
		Media: media.Config{
			Endpoint:  os.Getenv("MEDIA_ENDPOINT"),
			AccessKey: os.Getenv("MEDIA_ACCESS_KEY"),
			SecretKey: os.Getenv("MEDIA_SECRET_KEY"),
			Bucket:    os.Getenv("MEDIA_BUCKET"),
			BaseURL:   os.Getenv("MEDIA_PUBLIC_BASE_URL"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
