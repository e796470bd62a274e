package env

import (
	"os"

	"github.com/spf13/viper"
)

// PodName example: suinsapi-main-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName is `env_name` from config, else ENV_NAME. Example: k8ssta
func EnvName() string {
	return lookup("env_name", "ENV_NAME")
}

// AppName is `app_name` from config, else APP_NAME. Example: suinsapi
func AppName() string {
	return lookup("app_name", "APP_NAME")
}

func lookup(configKey, envKey string) string {
	if v := viper.GetString(configKey); v != "" {
		return v
	}
	return os.Getenv(envKey)
}
