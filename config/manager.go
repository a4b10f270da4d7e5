package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/arcaid/arcaid-go/log"
)

// LoadDeveloperConfig reads developer overrides from the named file,
// with ARCAID_* environment variables taking precedence over file
// values.
func LoadDeveloperConfig(path string) (DeveloperConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.AutomaticEnv()
	v.SetEnvPrefix("ARCAID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var dev DeveloperConfig
	if err := v.ReadInConfig(); err != nil {
		return dev, fmt.Errorf("read config failed: %w", err)
	}
	if err := v.Unmarshal(&dev); err != nil {
		return dev, fmt.Errorf("unmarshal config failed: %w", err)
	}
	if err := dev.Validate(); err != nil {
		return dev, fmt.Errorf("validate config failed: %w", err)
	}
	return dev, nil
}

// OverrideWatcher hot-reloads the developer override file into a Store.
// A reload that fails to parse or validate is logged and discarded; the
// previous overrides stay in effect.
type OverrideWatcher struct {
	path    string
	store   *Store
	watcher *fsnotify.Watcher
}

// WatchOverrides starts watching the override file for writes.
func WatchOverrides(path string, store *Store) (*OverrideWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &OverrideWatcher{path: path, store: store, watcher: watcher}
	go w.run()

	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *OverrideWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("override watcher error")
		}
	}
}

func (w *OverrideWatcher) reload() {
	dev, err := LoadDeveloperConfig(w.path)
	if err != nil {
		log.Warn().Err(err).Str("path", w.path).Msg("keeping previous overrides")
		return
	}
	w.store.ReplaceDeveloperConfig(dev)
	log.Info().Str("path", w.path).Msg("developer overrides reloaded")
}

// Close stops watching.
func (w *OverrideWatcher) Close() error {
	return w.watcher.Close()
}
