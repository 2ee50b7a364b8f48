package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gork-labs/paykit/pkg/client"
)

const (
	defaultConfigFile = ".paykit.yml"
	tokenEnv          = "PAYKIT_TOKEN"
)

// clientConfig resolves the client configuration. Flags win over
// $PAYKIT_TOKEN, which wins over the config file.
func (o *Options) clientConfig() (client.Config, error) {
	cfg, err := loadConfigFile(o.ConfigPath)
	if err != nil {
		return client.Config{}, err
	}

	if token := os.Getenv(tokenEnv); token != "" {
		cfg.Token = token
	}
	if o.Server != "" {
		cfg.Server = o.Server
		cfg.BaseURL = ""
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.Token != "" {
		cfg.Token = o.Token
	}
	return cfg, nil
}

// loadConfigFile reads a .paykit.yml file from path, or from the working directory
// when path is empty. A missing default file is not an error.
func loadConfigFile(path string) (client.Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return client.Config{}, nil
		}
		return client.Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg client.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return client.Config{}, fmt.Errorf("parse config: %w", err)
	}
	log.Debugw("loaded config", "path", path, "server", cfg.Server, "base_url", cfg.BaseURL)
	return cfg, nil
}

func (o *Options) newClient() (*client.Client, error) {
	cfg, err := o.clientConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("no access token: use --token, $%s or the config file", tokenEnv)
	}
	return client.New(cfg, client.WithIdempotencyKeys())
}
