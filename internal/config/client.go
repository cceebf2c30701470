package config

import (
	"fmt"
	"time"
)

// ClientConfig — настройки хоста виджета (thread-cli).
// Источники те же, что у Config; флаги командной строки накладываются сверху.
type ClientConfig struct {
	Env     string        `yaml:"env"     env:"ENV"            env-default:"local"`
	Addr    string        `yaml:"addr"    env:"THREAD_ADDR"    env-default:"127.0.0.1:50055"`
	Timeout time.Duration `yaml:"timeout" env:"THREAD_TIMEOUT" env-default:"5s"`

	ViewerID  string `yaml:"viewer_id"  env:"THREAD_VIEWER_ID"`
	ProjectID string `yaml:"project_id" env:"THREAD_PROJECT_ID"`
	PageID    string `yaml:"page_id"    env:"THREAD_PAGE_ID"`

	// Maintenance — режим обслуживания: лайк и ответ отключены.
	Maintenance     bool          `yaml:"maintenance"      env:"MAINTENANCE_MODE"  env-default:"false"`
	DisableTimeline bool          `yaml:"disable_timeline" env:"DISABLE_TIMELINE"  env-default:"false"`
	Feedback        time.Duration `yaml:"feedback"         env:"FEEDBACK_DURATION" env-default:"350ms"`
}

// LoadClient загружает ClientConfig по тому же приоритету, что и Load.
func LoadClient(path string) (*ClientConfig, error) {
	var cfg ClientConfig

	if err := load(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет значения после наложения флагов.
func (c *ClientConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0")
	}

	if c.Feedback < 0 {
		return fmt.Errorf("feedback must be >= 0")
	}

	return nil
}
