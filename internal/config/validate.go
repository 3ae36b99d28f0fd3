package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.ToolkitDir == "" {
		return errors.New("paths.toolkit_dir must be set")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.Workers < 1 || c.Download.Workers > MaxWorkers {
		return fmt.Errorf("download.workers must be between 1 and %d", MaxWorkers)
	}
	if err := ensurePositiveMap(map[string]int{
		"download.timeout_seconds":     c.Download.TimeoutSeconds,
		"download.max_attempts":        c.Download.MaxAttempts,
		"download.retry_delay_seconds": c.Download.RetryDelaySeconds,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.BaseURL == "" {
		return errors.New("resolver.base_url must be set")
	}
	if _, err := url.Parse(c.Resolver.BaseURL); err != nil {
		return fmt.Errorf("resolver.base_url is not a valid URL: %w", err)
	}
	return ensurePositiveMap(map[string]int{
		"resolver.request_delay_ms": c.Resolver.RequestDelayMS,
		"resolver.max_attempts":     c.Resolver.MaxAttempts,
		"resolver.timeout_seconds":  c.Resolver.TimeoutSeconds,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
