package featureflag

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/log"
)

// ConfigKey is the viper map holding static flag values.
const ConfigKey = "featureFlags.flags"

// Config serves flags from viper config, reloaded when the file changes.
type Config struct {
	*registry
	v *viper.Viper
}

func NewConfig(v *viper.Viper) *Config {
	cf := &Config{
		registry: newRegistry(),
		v:        v,
	}
	cf.registry.replace(cf.read())
	return cf
}

func (cf *Config) read() map[string]bool {
	values := make(map[string]bool)
	for key := range cf.v.GetStringMap(ConfigKey) {
		values[strings.ToLower(key)] = cf.v.GetBool(ConfigKey + "." + key)
	}
	return values
}

// Reload re-reads the flags from viper and notifies listeners of changes.
func (cf *Config) Reload(c ctx.Ctx) {
	if changed := cf.registry.replace(cf.read()); len(changed) > 0 {
		c.WithField("flags", changed).Info("feature flags changed")
	}
}

// Watch reloads the flags every time viper sees the config file change.
func (cf *Config) Watch(c ctx.Ctx) {
	cf.v.OnConfigChange(func(e fsnotify.Event) {
		c.WithFields(log.Fields{
			"file": e.Name,
			"op":   e.Op.String(),
		}).Info("config file changed")
		cf.Reload(c)
	})
	cf.v.WatchConfig()
}

func (cf *Config) IsOn(key string) bool {
	return cf.registry.IsOn(strings.ToLower(key))
}

func (cf *Config) Subscribe(key string, fn func(on bool)) func() {
	return cf.registry.Subscribe(strings.ToLower(key), fn)
}
