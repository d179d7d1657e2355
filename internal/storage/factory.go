package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ignatzorin/proposal-backend/internal/db"
)

// Движки локального режима.
const (
	LocalBackendPostgres = "postgres"
	LocalBackendRedis    = "redis"
)

// Options параметры выбора хранилища.
type Options struct {
	Mode           Mode
	LocalBackend   string
	DatabaseURL    string
	MigrationsPath string
	RedisURL       string
	RemoteBaseURL  string
	RemoteToken    string
	RemoteTimeout  time.Duration
}

// Open выбирает и инициализирует хранилище. Пустой режим означает demo.
// Возвращаемая функция освобождает ресурсы движка.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Mode {
	case "", ModeDemo:
		return NewDemoStore(), noop, nil

	case ModeRemote:
		store, err := NewRemoteStore(opts.RemoteBaseURL, opts.RemoteToken, opts.RemoteTimeout)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case ModeLocal:
		switch opts.LocalBackend {
		case "", LocalBackendPostgres:
			conn, err := db.NewPostgres(ctx, opts.DatabaseURL)
			if err != nil {
				return nil, nil, err
			}
			if err := db.RunMigrations(ctx, conn, db.Migrations(opts.MigrationsPath)); err != nil {
				_ = conn.Close()
				return nil, nil, err
			}
			return NewLocalStore(NewPostgresKV(conn)), conn.Close, nil

		case LocalBackendRedis:
			kv, err := NewRedisKV(opts.RedisURL)
			if err != nil {
				return nil, nil, err
			}
			return NewLocalStore(kv), kv.Close, nil

		default:
			return nil, nil, fmt.Errorf("storage: неизвестный LOCAL_BACKEND %q", opts.LocalBackend)
		}

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
}
