package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache          sync.Map // type name -> parsed config value
	dotenvLoadOnce sync.Once
)

// Load parses environment variables into the provided configuration struct.
//
// On first call it attempts to load a .env file from the working directory;
// a missing file is not an error. Each configuration type is parsed once per
// process; subsequent calls for the same type return the cached value, so
// configuration stays immutable after startup.
//
// Example:
//
//	type StoreConfig struct {
//		URL     string `env:"MONGODB_URL,required"`
//		Timeout time.Duration `env:"MONGODB_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvLoadOnce.Do(func() {
		// The .env file is optional.
		_ = godotenv.Load()
	})

	key := typeName[T]()
	if cached, ok := cache.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	// Another goroutine may have won the race; keep the first stored value
	// so every caller observes the same configuration.
	actual, _ := cache.LoadOrStore(key, *v)
	*v = actual.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Intended for configuration the application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	t := reflect.TypeOf(*new(T))
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
