// SPDX-License-Identifier: ice License 1.0

package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	applicationConfigFileName = "application.yaml"
	dotEnvLookupDepth         = 5
)

//nolint:gochecknoinits // Because we load the configs once, for the whole runtime
func init() {
	loadDotEnv()
	loadFirstApplicationConfigFile()
}

// MustLoadFromKey panics if the section found at key can't be decoded into cfg.
// A missing section leaves cfg untouched.
func MustLoadFromKey(key string, cfg any) {
	if err := LoadFromKey(key, cfg); err != nil {
		log.Panic(err)
	}
}

func LoadFromKey(key string, cfg any) error {
	return errors.Wrapf(viper.UnmarshalKey(key, cfg), "failed to load config by key %q", key)
}

func loadDotEnv() {
	dotEnvPath := `.env`
	for range dotEnvLookupDepth {
		if err := godotenv.Load(dotEnvPath); err == nil {
			return
		}
		dotEnvPath = fmt.Sprintf(`../%v`, dotEnvPath)
	}
}

// Libraries embedding this package can run without any application.yaml, everything then comes from env vars.
func loadFirstApplicationConfigFile() {
	for _, f := range findAllApplicationConfigFiles() {
		viper.SetConfigFile(f)
		if err := viper.ReadInConfig(); err == nil {
			return
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Panic(errors.Wrapf(err, "failed to read %v", f))
		}
	}

	log.Printf("WARN: no %v found, falling back to environment variables only", applicationConfigFileName)
}

func findAllApplicationConfigFiles() []string {
	var hints []string
	if p, err := os.Getwd(); err == nil {
		hints = append(hints, p)
	}
	if p, err := os.Executable(); err == nil {
		hints = append(hints, path.Dir(filepath.Join(p, "..")))
	}
	files := make([]string, 0, 1+1+len(hints))
	for _, dir := range hints {
		files = append(files, glob(filepath.Join(dir, ".testdata", applicationConfigFileName))...)
		files = append(files, glob(filepath.Join(dir, applicationConfigFileName))...)
	}
	//nolint:dogsled // Because those 3 blank identifiers are useless
	_, callerFile, _, _ := runtime.Caller(0)
	files = append(files, glob(filepath.Join(filepath.Dir(callerFile), "..", applicationConfigFileName))...)

	return files
}

func glob(pattern string) []string {
	files, err := filepath.Glob(pattern)
	if err != nil {
		log.Println(errors.Wrapf(err, "glob failed for [%v]", pattern))
	}

	return files
}
