// Package config loads the yaml config of a binary into viper. Flags given
// on the command line win over the file.
package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/log"
)

const DefaultPath = "configs/config.yaml"

// Flags shared by every binary
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", DefaultPath, "path of the yaml config")
	fs.String("log.level", "", "debug, info, warn or error")
	fs.String("api.baseUrl", "", "base url of the marketplace backend")
	fs.Duration("api.timeout", 0, "timeout of a single backend call")
	fs.String("session.tenant", "", "tenant the session is stored under")
	return fs
}

// Load parses args into fs and reads the file named by --config into v
func Load(v *viper.Viper, fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return xerrors.Errorf("parse flags: %w", err)
	}
	// only flags set explicitly override the file, BindPFlags would let
	// every empty default shadow it
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})
	if err != nil {
		return xerrors.Errorf("bind flags: %w", err)
	}

	path, _ := fs.GetString("config")
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return xerrors.Errorf("read %s: %w", path, err)
	}

	if lvl := v.GetString("log.level"); lvl != "" && !log.SetLevel(lvl) {
		return xerrors.Errorf("unknown log.level %q", lvl)
	}
	if v.GetBool("debug") {
		log.Log().Info("running in debug mode")
	}
	return nil
}

// Duration reads key, def when unset or not positive
func Duration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return def
}
