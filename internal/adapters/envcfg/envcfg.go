// Package envcfg captures operator overrides for one resolution session.
package envcfg

import (
	"os"
	"path/filepath"
	"strings"

	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variable names. Kept stable; these are the operator surface.
const (
	EnvOffline    = "HERMETIK_OFFLINE"
	EnvVendorDir  = "HERMETIK_VENDOR_DIR"
	EnvMirrorBase = "HERMETIK_MIRROR_BASE"
	EnvCatalogDir = "HERMETIK_CATALOG_DIR"
	EnvAuth       = "HERMETIK_AUTH"
)

// LookupFunc is the environment accessor, injectable for tests.
// os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// configFile mirrors hermetik.yaml.
type configFile struct {
	Offline    bool              `yaml:"offline"`
	VendorDir  string            `yaml:"vendorDir"`
	MirrorBase string            `yaml:"mirrorBase"`
	CatalogDir string            `yaml:"catalogDir"`
	Auth       map[string]string `yaml:"auth"`
}

// Load builds the session configuration: defaults, overlaid by hermetik.yaml
// (discovered by walking up from cwd), overlaid by environment variables.
// The result is captured once and passed by value; later mutation of the
// process environment has no effect on in-flight resolutions.
func Load(cwd string, lookup LookupFunc) (domain.EnvironmentConfig, error) {
	env := domain.EnvironmentConfig{RegistryAuth: map[string]string{}}

	if path := findConfigFile(cwd); path != "" {
		//nolint:gosec // Path is discovered relative to the working directory
		data, err := os.ReadFile(path)
		if err != nil {
			e := domain.WithField(domain.ErrConfigLoad, "cause", err.Error())
			return domain.EnvironmentConfig{}, zerr.With(e, "file", path)
		}
		var cf configFile
		if err := yaml.Unmarshal(data, &cf); err != nil {
			e := domain.WithField(domain.ErrConfigLoad, "cause", err.Error())
			return domain.EnvironmentConfig{}, zerr.With(e, "file", path)
		}
		env.Offline = cf.Offline
		env.VendorDir = cf.VendorDir
		env.MirrorBase = cf.MirrorBase
		env.CatalogDir = cf.CatalogDir
		for host, token := range cf.Auth {
			env.RegistryAuth[host] = token
		}
	}

	if v, ok := lookup(EnvOffline); ok {
		env.Offline = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := lookup(EnvVendorDir); ok {
		env.VendorDir = v
	}
	if v, ok := lookup(EnvMirrorBase); ok {
		env.MirrorBase = strings.TrimSuffix(v, "/")
	}
	if v, ok := lookup(EnvCatalogDir); ok {
		env.CatalogDir = v
	}
	if v, ok := lookup(EnvAuth); ok {
		auth, err := parseAuth(v)
		if err != nil {
			return domain.EnvironmentConfig{}, err
		}
		for host, token := range auth {
			env.RegistryAuth[host] = token
		}
	}

	return env, nil
}

// parseAuth parses "host=token,host2=token2".
func parseAuth(raw string) (map[string]string, error) {
	auth := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		host, token, found := strings.Cut(pair, "=")
		if !found || host == "" || token == "" {
			e := domain.WithField(domain.ErrConfigLoad, "reason", "malformed auth entry, expected host=token")
			return nil, zerr.With(e, "entry", pair)
		}
		auth[host] = token
	}
	return auth, nil
}

// findConfigFile walks up from cwd looking for hermetik.yaml.
func findConfigFile(cwd string) string {
	dir := cwd
	for {
		path := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
