package tokenstore

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"blogctl/internal/blog"
	"blogctl/internal/config"
)

// NewTokenStoreFromConfig creates a TokenStore based on the token store
// config type. enc is only used by an encrypted filesystem store.
func NewTokenStoreFromConfig(cfg config.TokenStoreConfig, enc blog.Encryptor) (blog.TokenStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem", "":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("filesystem token store requires dir to be set")
		}
		if !cfg.Encrypt {
			return NewFileSystemStore(cfg.Dir, nil)
		}
		if enc == nil || !enc.IsConfigured() {
			return nil, fmt.Errorf("token encryption is enabled but no keys are configured; run 'blogctl config init'")
		}
		return NewFileSystemStore(cfg.Dir, enc)
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis token store requires redis_addr to be set")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisStore(client, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown token store type: %s", cfg.Type)
	}
}
