package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if c.Import.MaxEntries <= 0 {
		return fmt.Errorf("import.max_entries must be > 0 (got %d)", c.Import.MaxEntries)
	}
	if c.Import.BatchRetentionDays <= 0 {
		return fmt.Errorf("import.batch_retention_days must be > 0 (got %d)", c.Import.BatchRetentionDays)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in 0..max_conns (got %d)", d.MinConns)
	}
	if d.TxTimeout < 0 {
		return fmt.Errorf("tx_timeout must be >= 0 (got %v)", d.TxTimeout)
	}
	return nil
}
