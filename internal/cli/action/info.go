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
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/suse/bootlogo/internal/cli/cmd"
	"github.com/suse/bootlogo/pkg/logo"
)

type infoView struct {
	Enabled            bool     `yaml:"enabled"`
	Width              uint32   `yaml:"width"`
	Height             uint32   `yaml:"height"`
	Formats            []string `yaml:"formats"`
	Version            string   `yaml:"version,omitempty"`
	Checksum           string   `yaml:"checksum,omitempty"`
	BootSplash         bool     `yaml:"bootSplash"`
	DescriptorVariable string   `yaml:"descriptorVariable"`
	CheckVariable      string   `yaml:"checkVariable,omitempty"`
}

func newInfoView(info *logo.Info, splash bool) infoView {
	v := infoView{
		Enabled:            info.Descriptor.Enabled(),
		Width:              info.Descriptor.Width,
		Height:             info.Descriptor.Height,
		Formats:            []string{},
		BootSplash:         splash,
		DescriptorVariable: info.DescriptorVar.String(),
	}
	for _, f := range info.Descriptor.Formats() {
		v.Formats = append(v.Formats, string(f))
	}
	if info.Check != nil {
		v.Version = fmt.Sprintf("0x%x", info.Check.Version)
		v.Checksum = hex.EncodeToString(info.Check.Checksum())
		v.CheckVariable = info.CheckVar.String()
	}
	return v
}

func Info(c *cli.Context) error {
	env, err := setupEnvironment(c)
	if err != nil {
		return err
	}
	ctrl, err := env.controller()
	if err != nil {
		return err
	}

	info, err := ctrl.GetInfo()
	if err != nil {
		env.system.Logger().Error("Reading the boot logo settings failed")
		return err
	}
	return printInfo(c.App.Writer, env, info, cmd.InfoArgs.Output)
}

func printInfo(w io.Writer, env *environment, info *logo.Info, format string) error {
	splash, err := env.caps.BootSplashVisible()
	if err != nil {
		env.system.Logger().Warn("Querying boot splash visibility failed: %v", err)
	}
	view := newInfoView(info, splash)

	if format == cmd.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(view); err != nil {
			return fmt.Errorf("encoding info: %w", err)
		}
		return enc.Close()
	}

	state := "disabled"
	if view.Enabled {
		state = "enabled"
	}
	splashState := "visible"
	if !view.BootSplash {
		splashState = "hidden"
	}
	version, checksum, checkVar := view.Version, view.Checksum, view.CheckVariable
	if info.Check == nil {
		version, checksum, checkVar = "unknown", "not available", "not found"
	}
	_, err = fmt.Fprintf(w,
		"Custom logo:     %s\nMax resolution:  %dx%d\nFormats:         %s\nProtocol:        %s\nChecksum:        %s\nBoot splash:     %s\nDescriptor:      %s\nCheck:           %s\n",
		state, view.Width, view.Height, strings.Join(view.Formats, ", "), version, checksum, splashState,
		view.DescriptorVariable, checkVar,
	)
	return err
}
