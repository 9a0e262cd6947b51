package encryption

import (
	"fmt"

	"blogctl/internal/blog"
	"blogctl/internal/config"
)

// NewEncryptorFromConfig returns the Encryptor protecting the persisted
// token. It returns nil when the token store keeps the token in plain form
// (memory, redis, or a filesystem store with encrypt = false), so no keys
// are needed in that case.
func NewEncryptorFromConfig(cfg config.EncryptionConfig, store config.TokenStoreConfig) (blog.Encryptor, error) {
	if !tokenEncrypted(store) {
		return nil, nil
	}

	switch cfg.Type {
	case "age", "":
		if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
			return nil, fmt.Errorf("token encryption needs public_key_path and private_key_path; run 'blogctl config init'")
		}
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	default:
		return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
	}
}

func tokenEncrypted(store config.TokenStoreConfig) bool {
	return (store.Type == "" || store.Type == "filesystem") && store.Encrypt
}
