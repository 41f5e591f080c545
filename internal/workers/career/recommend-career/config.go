// internal/workers/career/recommend-career/config.go
package recommendcareer

import (
	"fmt"
	"time"

	"career-workers/internal/common/config"
	"career-workers/pkg/registry"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	MaxRetries    int
	CacheTTL      time.Duration
	InputSchema   map[string]interface{}
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       10 * time.Second,
		MaxRetries:    3,
		CacheTTL:      10 * time.Minute,
	}
}

// LoadConfig merges the worker section of the application config and the
// activity input schema over the defaults.
func LoadConfig(appCfg *config.Config, reg *registry.ActivityRegistry) (*Config, error) {
	cfg := DefaultConfig()

	if appCfg != nil {
		wc := config.GetWorkerConfig(appCfg, TaskType)
		cfg.Enabled = config.IsWorkerEnabled(appCfg, TaskType)
		if wc.MaxJobsActive > 0 {
			cfg.MaxJobsActive = wc.MaxJobsActive
		}
		if wc.Timeout > 0 {
			cfg.Timeout = config.GetDuration(wc.Timeout)
		}
		if wc.MaxRetries > 0 {
			cfg.MaxRetries = wc.MaxRetries
		}
		if wc.CacheTTL > 0 {
			cfg.CacheTTL = time.Duration(wc.CacheTTL) * time.Second
		}
	}

	if reg != nil {
		activity, err := reg.Find(TaskType)
		if err != nil {
			return nil, err
		}
		cfg.InputSchema = activity.InputSchema
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	return nil
}
