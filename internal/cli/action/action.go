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

package action

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/suse/bootlogo/internal/cli/cmd"
	"github.com/suse/bootlogo/internal/config"
	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/logo"
	"github.com/suse/bootlogo/pkg/sys"
	"github.com/suse/bootlogo/pkg/sys/platform"
)

type environment struct {
	system *sys.System
	config *config.Config
	caps   platform.Capabilities
	vars   efi.Variables
}

func setupEnvironment(c *cli.Context) (*environment, error) {
	if c.App.Metadata == nil || c.App.Metadata[cmd.SystemKey] == nil {
		return nil, fmt.Errorf("error setting up initial configuration")
	}
	env := &environment{}
	var ok bool
	if env.system, ok = c.App.Metadata[cmd.SystemKey].(*sys.System); !ok {
		return nil, fmt.Errorf("error setting up initial configuration")
	}
	if env.config, ok = c.App.Metadata[cmd.ConfigKey].(*config.Config); !ok {
		env.config = config.Default()
	}
	if env.caps, ok = c.App.Metadata[cmd.CapabilitiesKey].(platform.Capabilities); !ok {
		env.caps = platform.New(env.system, env.config.PlatformOptions()...)
	}
	if env.vars, ok = c.App.Metadata[cmd.VariablesKey].(efi.Variables); !ok {
		env.vars = efi.NewVars()
	}
	return env, nil
}

func (e *environment) requirePrivileges(operation string) error {
	if !e.caps.IsPrivileged() {
		return fmt.Errorf("%s: %w", operation, logo.ErrPrivilege)
	}
	return nil
}

func (e *environment) controller() (*logo.Controller, error) {
	records, err := e.config.Records()
	if err != nil {
		return nil, err
	}
	return logo.NewController(e.system, e.vars, e.caps,
		logo.WithVendor(e.config.Vendor),
		logo.WithRecords(records),
	), nil
}
