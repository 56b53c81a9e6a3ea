package hasher

// Config provides environment-based configuration for the hasher.
type Config struct {
	Secret string `env:"HASH_SALT,required,notEmpty"`
}

// NewFromConfig creates a Hasher from configuration.
func NewFromConfig(cfg Config) (*Hasher, error) {
	return New(cfg.Secret)
}
