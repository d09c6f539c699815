/*
Copyright © 2025 SUSE LLC
SPDX-License-Identifier: Apache-2.0

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/logo"
	"github.com/suse/bootlogo/pkg/sys/platform"
	"github.com/suse/bootlogo/pkg/sys/vfs"
)

// EnvFile holds host wide overrides in KEY=value form
const EnvFile = "/etc/default/bootlogo"

const (
	envVendor     = "BOOTLOGO_VENDOR"
	envMountDir   = "BOOTLOGO_MOUNT_DIR"
	envEfivarsDir = "BOOTLOGO_EFIVARS_DIR"
)

type Variable struct {
	Name string `yaml:"name"`
	GUID string `yaml:"guid"`
}

type Discovery struct {
	Attempts int           `yaml:"attempts"`
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	// Vendor is the ESP directory under /EFI logos are staged in
	Vendor     string    `yaml:"vendor"`
	Descriptor Variable  `yaml:"descriptor"`
	Check      Variable  `yaml:"check"`
	MountDir   string    `yaml:"mountDir"`
	EfivarsDir string    `yaml:"efivarsDir"`
	Discovery  Discovery `yaml:"discovery"`
}

func Default() *Config {
	return &Config{
		Vendor:     logo.DefaultVendor,
		Descriptor: Variable{Name: logo.DescriptorName, GUID: logo.DescriptorGUID.String()},
		Check:      Variable{Name: logo.CheckName, GUID: logo.CheckGUID.String()},
		MountDir:   platform.DefaultMountDir,
		EfivarsDir: platform.DefaultEfivarsDir,
		Discovery: Discovery{
			Attempts: platform.DefaultAttempts,
			Interval: platform.DefaultInterval,
		},
	}
}

// Load returns the defaults overridden by EnvFile, if present, and then
// by the given YAML file, if any
func Load(fs vfs.FS, file string) (*Config, error) {
	cfg := Default()

	ok, err := vfs.Exists(fs, EnvFile, true)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", EnvFile, err)
	}
	if ok {
		env, err := vfs.LoadEnvFile(fs, EnvFile)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", EnvFile, err)
		}
		cfg.applyEnv(env)
	}

	if file != "" {
		data, err := fs.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err = ParseConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", file, err)
		}
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ParseConfig(data []byte, target any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	return decoder.Decode(target)
}

func (c *Config) applyEnv(env map[string]string) {
	if v := env[envVendor]; v != "" {
		c.Vendor = v
	}
	if v := env[envMountDir]; v != "" {
		c.MountDir = v
	}
	if v := env[envEfivarsDir]; v != "" {
		c.EfivarsDir = v
	}
}

func (c Config) Validate() error {
	if c.Vendor == "" || strings.ContainsAny(c.Vendor, `/\`) || c.Vendor == "." || c.Vendor == ".." {
		return fmt.Errorf("invalid vendor directory name '%s'", c.Vendor)
	}
	for _, v := range []Variable{c.Descriptor, c.Check} {
		if v.Name == "" {
			return fmt.Errorf("missing variable name")
		}
		if _, err := uuid.Parse(v.GUID); err != nil {
			return fmt.Errorf("invalid GUID '%s' for variable %s: %w", v.GUID, v.Name, err)
		}
	}
	if c.Descriptor == c.Check {
		return fmt.Errorf("descriptor and check must be different variables")
	}
	if c.Discovery.Attempts < 1 {
		return fmt.Errorf("discovery attempts must be at least 1, got %d", c.Discovery.Attempts)
	}
	if c.Discovery.Interval < 0 {
		return fmt.Errorf("discovery interval must not be negative")
	}
	return nil
}

func (v Variable) id() (logo.VarID, error) {
	parsed, err := uuid.Parse(v.GUID)
	if err != nil {
		return logo.VarID{}, fmt.Errorf("invalid GUID '%s': %w", v.GUID, err)
	}
	guid, err := efi.DecodeGUIDString(parsed.String())
	if err != nil {
		return logo.VarID{}, err
	}
	return logo.VarID{Name: v.Name, GUID: guid}, nil
}

// Records returns the firmware variables holding the logo records
func (c Config) Records() (logo.Records, error) {
	desc, err := c.Descriptor.id()
	if err != nil {
		return logo.Records{}, err
	}
	check, err := c.Check.id()
	if err != nil {
		return logo.Records{}, err
	}
	return logo.Records{Descriptor: desc, Check: check}, nil
}

// PlatformOptions returns the platform capability options matching the configuration
func (c Config) PlatformOptions() []platform.Option {
	return []platform.Option{
		platform.WithMountDir(c.MountDir),
		platform.WithEfivarsDir(c.EfivarsDir),
		platform.WithDiscovery(c.Discovery.Attempts, c.Discovery.Interval),
	}
}
