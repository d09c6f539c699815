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

package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/suse/bootlogo/internal/config"
	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/log"
	"github.com/suse/bootlogo/pkg/sys"
	"github.com/suse/bootlogo/pkg/sys/platform"
)

const Usage = "Replace the firmware boot logo"

// Keys of the application metadata set up before running any command
const (
	SystemKey       = "system"
	ConfigKey       = "config"
	CapabilitiesKey = "capabilities"
	VariablesKey    = "variables"
)

func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Set logging at debug level",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML configuration file",
		},
	}
}

func Setup(ctx *cli.Context) error {
	s, err := sys.NewSystem()
	if err != nil {
		return err
	}

	if ctx.Bool("debug") {
		s.Logger().SetLevel(log.DebugLevel())
	}

	cfg, err := config.Load(s.FS(), ctx.String("config"))
	if err != nil {
		return err
	}

	if ctx.App.Metadata == nil {
		ctx.App.Metadata = map[string]any{}
	}
	ctx.App.Metadata[SystemKey] = s
	ctx.App.Metadata[ConfigKey] = cfg
	ctx.App.Metadata[CapabilitiesKey] = platform.New(s, cfg.PlatformOptions()...)
	ctx.App.Metadata[VariablesKey] = efi.NewVars()
	return nil
}
