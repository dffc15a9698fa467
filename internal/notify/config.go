package notify

import "time"

const (
	defaultBatchSize    = 20
	defaultPollInterval = 5 * time.Second
)

// Config controls how the receipt delivery loop drains the outbox.
type Config struct {
	BatchSize    int
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{BatchSize: defaultBatchSize, PollInterval: defaultPollInterval}
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	return c
}
