/*
Cfgserver starts an HTTP grammar membership-checking service.

Usage:

	cfgserver [flags]

Cfgserver stores named context-free grammars in a sqlite database and
answers membership queries against them over HTTP, using either the
Earley or canonical LR(1) recognizer. By default it listens on
localhost:8080; this can be changed with -l/--listen or the
CFGREC_LISTEN_ADDRESS environment variable, or a "listen_address" key in
a config file given with -c/--config.

If a JWT signing secret is not given (via -s/--secret, CFGREC_JWT_SECRET,
or a config file), one is generated at startup; tokens minted under it
become invalid as soon as the process exits, which is fine for local
testing but not for anything long-lived.

The flags are:

	-c, --config PATH
		Load a TOML config file from PATH. Not required; if absent, only
		environment variables and other flags apply.

	-l, --listen ADDRESS
		Listen on the given address, e.g. "localhost:8080" or ":8080".

	-s, --secret SECRET
		Use SECRET to sign JWT bearer tokens.

	--db PATH
		Path to the sqlite database file to use for storing grammars and
		API keys.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dekarrin/cfgrec/internal/cfgconfig"
	"github.com/dekarrin/cfgrec/internal/server"
	"github.com/spf13/pflag"
)

var (
	flagConfig = pflag.StringP("config", "c", "", "Load a TOML config file.")
	flagListen = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret = pflag.StringP("secret", "s", "", "Use the given JWT signing secret.")
	flagDB     = pflag.String("db", "", "Path to the sqlite database file.")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		return 1
	}

	cfg, err := cfgconfig.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if pflag.Lookup("listen").Changed {
		cfg.ListenAddress = *flagListen
	}
	if pflag.Lookup("secret").Changed {
		cfg.JWTSecret = *flagSecret
	}
	if pflag.Lookup("db").Changed {
		cfg.DBFile = *flagDB
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "could not generate JWT secret: %v\n", err)
			return 1
		}
		log.Printf("WARN  using generated JWT secret; tokens will become invalid at shutdown")
	}

	srv, err := server.New(server.Config{
		DBFile:    cfg.DBFile,
		JWTSecret: secret,
	})
	if err != nil {
		log.Printf("FATAL could not start server: %v", err)
		return 1
	}
	defer srv.Close()

	log.Printf("INFO  cfgserver listening on %s", cfg.ListenAddress)
	if err := http.ListenAndServe(cfg.ListenAddress, srv); err != nil {
		log.Printf("FATAL %v", err)
		return 1
	}

	return 0
}
