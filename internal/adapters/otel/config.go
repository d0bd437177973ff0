package otel

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `yaml:"endpoint" envconfig:"HERDSTATS_OTEL_ENDPOINT"`
	Enabled  bool   `yaml:"enabled" envconfig:"HERDSTATS_OTEL_ENABLED"`
	Insecure bool   `yaml:"insecure" envconfig:"HERDSTATS_OTEL_INSECURE"`
}
