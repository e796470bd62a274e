package env

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigOverridesEnv(t *testing.T) {
	t.Setenv("ENV_NAME", "from-env")
	t.Setenv("APP_NAME", "from-env-app")
	defer viper.Reset()

	assert.Equal(t, "from-env", EnvName())
	assert.Equal(t, "from-env-app", AppName())

	viper.Set("env_name", "staging")
	assert.Equal(t, "staging", EnvName())
	assert.Equal(t, "from-env-app", AppName())
}

func TestPodName(t *testing.T) {
	t.Setenv("PODNAME", "suinsapi-main-0")
	assert.Equal(t, "suinsapi-main-0", PodName())
}
