/*
Ldlfsrv starts an ldlf2dfa HTTP service and begins listening for requests.

Usage:

	ldlfsrv [flags]
	ldlfsrv [flags] -l [[ADDRESS]:PORT]

Once started, the service listens for HTTP requests against the
/api/v1 routes documented in server/api and responds using JSON. By
default it listens on :8080; this can be changed with the --listen/-l
flag or the LDLFSRV_LISTEN_ADDRESS environment variable.

If a JWT token secret is not given, one will be automatically
generated and seeded from the system's random source. As a
consequence, in this mode of operation all tokens are rendered invalid
as soon as the server shuts down. This is suitable for testing, but a
fixed secret must be given via flag, environment variable, or config
file if running in production.

The flags are:

	-v, --version
		Give the current version of the ldlf2dfa server and then exit.

	-c, --config PATH
		Load server configuration from the TOML file at PATH. Flags and
		environment variables override values loaded from the file.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		LDLFSRV_LISTEN_ADDRESS, and if that is not given, defaults to :8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. Must be at least 32
		bytes. If not given, defaults to the value of environment variable
		LDLFSRV_TOKEN_SECRET. If no secret is specified, a random one is
		generated, and any tokens issued become invalid once the server
		shuts down.

	--cache PATH
		Use the sqlite database at PATH to cache compiled DFAs. If not
		given, defaults to the value of environment variable
		LDLFSRV_CACHE_PATH, and if that is not given, defaults to
		ldlf2dfa-cache.db.
*/
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dekarrin/ldlf2dfa/internal/config"
	"github.com/dekarrin/ldlf2dfa/internal/version"
	"github.com/dekarrin/ldlf2dfa/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "LDLFSRV_LISTEN_ADDRESS"
	EnvSecret = "LDLFSRV_TOKEN_SECRET"
	EnvCache  = "LDLFSRV_CACHE_PATH"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the ldlf2dfa server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load server configuration from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for signing JWT tokens.")
	flagCache   = pflag.String("cache", "", "Use the sqlite database at the given path to cache compiled DFAs.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("ldlf2dfa server v%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer srv.Close()

	log.Printf("INFO  Starting ldlf2dfa server %s on %s...", version.Current, cfg.ListenAddress)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	var err error

	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			return config.Config{}, err
		}
	}

	if pflag.Lookup("listen").Changed {
		cfg.ListenAddress = *flagListen
	} else if env := os.Getenv(EnvListen); env != "" {
		cfg.ListenAddress = env
	}

	if pflag.Lookup("secret").Changed {
		cfg.TokenSecret = *flagSecret
	} else if env := os.Getenv(EnvSecret); env != "" {
		cfg.TokenSecret = env
	}

	if pflag.Lookup("cache").Changed {
		cfg.CachePath = *flagCache
	} else if env := os.Getenv(EnvCache); env != "" {
		cfg.CachePath = env
	}

	cfg = cfg.FillDefaults()

	if cfg.TokenSecret == "" {
		secret := make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return config.Config{}, fmt.Errorf("could not generate token secret: %w", err)
		}
		cfg.TokenSecret = string(secret)
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
