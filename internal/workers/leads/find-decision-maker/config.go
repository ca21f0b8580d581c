// internal/workers/leads/find-decision-maker/config.go
package finddecisionmaker

import "time"

type Config struct {
	Timeout         time.Duration
	GuardTTL        time.Duration
	ResultsPerQuery int
	LeadIndex       string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         120 * time.Second,
		GuardTTL:        5 * time.Minute,
		ResultsPerQuery: 10,
		LeadIndex:       "leads",
	}
}
