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

package action_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"

	"github.com/suse/bootlogo/internal/cli/action"
	"github.com/suse/bootlogo/internal/cli/cmd"
	"github.com/suse/bootlogo/internal/config"
	efimock "github.com/suse/bootlogo/pkg/efi/mock"
	"github.com/suse/bootlogo/pkg/log"
	"github.com/suse/bootlogo/pkg/logo"
	"github.com/suse/bootlogo/pkg/sys"
	sysmock "github.com/suse/bootlogo/pkg/sys/mock"
	platmock "github.com/suse/bootlogo/pkg/sys/platform/mock"
	"github.com/suse/bootlogo/pkg/sys/vfs"
)

var _ = Describe("Actions", Label("action"), func() {
	var s *sys.System
	var fs vfs.FS
	var cleanup func()
	var ctx *cli.Context
	var out *bytes.Buffer
	var logs *bytes.Buffer
	var vars *efimock.EFIVariables
	var caps *platmock.Capabilities

	BeforeEach(func() {
		var err error
		cmd.InfoArgs = cmd.InfoFlags{Output: cmd.OutputText}
		cmd.SetArgs = cmd.SetFlags{}
		cmd.SplashArgs = cmd.SplashFlags{}
		out = &bytes.Buffer{}
		logs = &bytes.Buffer{}
		fs, cleanup, err = sysmock.TestFS(map[string]string{
			"/home/user/logo.png":       "png",
			"/esp/EFI/BOOT/BOOTX64.EFI": "loader",
		})
		Expect(err).NotTo(HaveOccurred())
		s, err = sys.NewSystem(sys.WithFS(fs), sys.WithLogger(log.New(log.WithBuffer(logs))))
		Expect(err).NotTo(HaveOccurred())

		desc := logo.DeviceDescriptor{Width: 1920, Height: 1080, SupportMask: 0x21}
		check := logo.DeviceCheck{Version: logo.VersionCRC32}
		vars = efimock.NewMockEFIVariables().
			Set(logo.DescriptorName, logo.DescriptorGUID, desc.Encode()).
			Set(logo.CheckName, logo.CheckGUID, check.Encode())
		caps = platmock.NewCapabilities("/esp")

		cfg := config.Default()
		cfg.Vendor = "Vendor"

		ctx = cli.NewContext(cli.NewApp(), nil, &cli.Context{})
		ctx.App.Writer = out
		ctx.App.Metadata = map[string]any{
			cmd.SystemKey:       s,
			cmd.ConfigKey:       cfg,
			cmd.CapabilitiesKey: caps,
			cmd.VariablesKey:    vars,
		}
	})
	AfterEach(func() {
		cleanup()
	})

	It("fails without system", func() {
		ctx.App.Metadata = nil
		Expect(action.Info(ctx)).NotTo(Succeed())
	})

	Describe("info", func() {
		It("prints the logo settings as text", func() {
			Expect(action.Info(ctx)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Custom logo:     disabled"))
			Expect(out.String()).To(ContainSubstring("Max resolution:  1920x1080"))
			Expect(out.String()).To(ContainSubstring("Formats:         jpg, png"))
			Expect(out.String()).To(ContainSubstring("Protocol:        0x20000"))
			Expect(out.String()).To(ContainSubstring("Checksum:        00000000"))
		})
		It("prints the logo settings as YAML", func() {
			cmd.InfoArgs.Output = cmd.OutputYAML
			Expect(action.Info(ctx)).To(Succeed())
			var parsed map[string]any
			Expect(yaml.Unmarshal(out.Bytes(), &parsed)).To(Succeed())
			Expect(parsed["width"]).To(Equal(1920))
			Expect(parsed["formats"]).To(Equal([]any{"jpg", "png"}))
			Expect(parsed["version"]).To(Equal("0x20000"))
			Expect(parsed["descriptorVariable"]).To(Equal("LBLDESP-871455d0-5576-4fb8-9865-af0824463b9e"))
		})
		It("reports missing device checks", func() {
			Expect(vars.WriteVariable(logo.CheckName, logo.CheckGUID, 0, nil)).To(Succeed())
			Expect(action.Info(ctx)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("Protocol:        unknown"))
		})
		It("fails when the descriptor cannot be read", func() {
			Expect(vars.WriteVariable(logo.DescriptorName, logo.DescriptorGUID, 0, nil)).To(Succeed())
			Expect(action.Info(ctx)).To(MatchError(logo.ErrVariableRead))
		})
	})

	Describe("set", func() {
		BeforeEach(func() {
			cmd.SetArgs.Image = "/home/user/logo.png"
		})
		It("requires privileges", func() {
			caps.Privileged = false
			Expect(action.SetLogo(ctx)).To(MatchError(logo.ErrPrivilege))
			Expect(vars.Writes).To(BeZero())
			Expect(caps.MountCalls).To(BeZero())
		})
		It("sets the logo and prints the new settings", func() {
			Expect(action.SetLogo(ctx)).To(Succeed())
			Expect(vfs.Exists(fs, "/esp/EFI/Vendor/Logo/mylogo_1920x1080.png")).To(BeTrue())
			Expect(out.String()).To(ContainSubstring("Custom logo:     enabled"))
		})
		It("sets the splash visibility first", func() {
			cmd.SetArgs.HideLoadingIcon = true
			Expect(action.SetLogo(ctx)).To(Succeed())
			Expect(caps.SplashVisible).To(BeFalse())
			Expect(out.String()).To(ContainSubstring("Boot splash:     hidden"))
		})
		It("leaves the splash untouched by default", func() {
			caps.SplashVisible = false
			Expect(action.SetLogo(ctx)).To(Succeed())
			Expect(caps.SplashVisible).To(BeFalse())
		})
		It("reports failures and still prints the settings", func() {
			vars.WithWriteError(logo.CheckName, logo.ErrVariableWrite)
			Expect(action.SetLogo(ctx)).To(MatchError(logo.ErrVariableWrite))
			Expect(out.String()).To(ContainSubstring("Custom logo:     enabled"))
			Expect(logs.String()).To(ContainSubstring("Setting the boot logo failed"))
		})
	})

	Describe("restore", func() {
		It("requires privileges", func() {
			caps.Privileged = false
			Expect(action.RestoreLogo(ctx)).To(MatchError(logo.ErrPrivilege))
		})
		It("restores the default logo and the splash", func() {
			cmd.SetArgs.Image = "/home/user/logo.png"
			cmd.SetArgs.HideLoadingIcon = true
			Expect(action.SetLogo(ctx)).To(Succeed())
			out.Reset()

			Expect(action.RestoreLogo(ctx)).To(Succeed())
			Expect(vfs.Exists(fs, "/esp/EFI/Vendor/Logo")).To(BeFalse())
			Expect(caps.SplashVisible).To(BeTrue())
			Expect(out.String()).To(ContainSubstring("Custom logo:     disabled"))
		})
	})

	Describe("splash", func() {
		It("prints the current state", func() {
			Expect(action.Splash(ctx)).To(Succeed())
			Expect(out.String()).To(Equal("Boot splash: visible\n"))
		})
		It("hides the splash", func() {
			cmd.SplashArgs.State = cmd.SplashHide
			Expect(action.Splash(ctx)).To(Succeed())
			Expect(caps.SplashVisible).To(BeFalse())
			Expect(out.String()).To(Equal("Boot splash: hidden\n"))
		})
		It("requires privileges to change it", func() {
			caps.Privileged = false
			cmd.SplashArgs.State = cmd.SplashShow
			Expect(action.Splash(ctx)).To(MatchError(logo.ErrPrivilege))
		})
	})
})
