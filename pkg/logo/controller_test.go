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

package logo_test

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/suse/bootlogo/pkg/efi"
	efimock "github.com/suse/bootlogo/pkg/efi/mock"
	"github.com/suse/bootlogo/pkg/log"
	"github.com/suse/bootlogo/pkg/logo"
	"github.com/suse/bootlogo/pkg/sys"
	sysmock "github.com/suse/bootlogo/pkg/sys/mock"
	platmock "github.com/suse/bootlogo/pkg/sys/platform/mock"
	"github.com/suse/bootlogo/pkg/sys/vfs"
)

var _ = Describe("Controller", Label("logo", "controller"), func() {
	var fs vfs.FS
	var cleanup func()
	var s *sys.System
	var vars *efimock.EFIVariables
	var caps *platmock.Capabilities
	var ctrl *logo.Controller
	var desc logo.DeviceDescriptor
	var check logo.DeviceCheck
	var buf *bytes.Buffer
	pngData := strings.Repeat("\x89PNG logo bytes ", 64)

	setup := func() {
		vars = efimock.NewMockEFIVariables().
			Set(logo.DescriptorName, logo.DescriptorGUID, desc.Encode()).
			Set(logo.CheckName, logo.CheckGUID, check.Encode())
		ctrl = logo.NewController(s, vars, caps, logo.WithVendor("Vendor"), logo.WithNameScan(true))
	}
	descriptor := func() logo.DeviceDescriptor {
		d, err := logo.DecodeDescriptor(vars.Data(logo.DescriptorName, logo.DescriptorGUID))
		Expect(err).NotTo(HaveOccurred())
		return d
	}
	deviceCheck := func() []byte {
		return vars.Data(logo.CheckName, logo.CheckGUID)
	}

	BeforeEach(func() {
		var err error
		fs, cleanup, err = sysmock.TestFS(map[string]string{
			"/home/user/logo.png":                     pngData,
			"/home/user/logo.JPG":                     "jpeg",
			"/home/user/noext":                        "data",
			"/esp/EFI/BOOT/BOOTX64.EFI":               "loader",
			"/esp/EFI/Vendor/Logo/mylogo_640x480.bmp": "old",
		})
		Expect(err).NotTo(HaveOccurred())
		buf = &bytes.Buffer{}
		s, err = sys.NewSystem(sys.WithFS(fs), sys.WithLogger(log.New(log.WithBuffer(buf))))
		Expect(err).NotTo(HaveOccurred())
		caps = platmock.NewCapabilities("/esp")
		desc = logo.DeviceDescriptor{Enable: 0, Width: 1920, Height: 1080, SupportMask: 0x21}
		check = logo.DeviceCheck{Version: logo.VersionSHA256}
		setup()
	})
	AfterEach(func() {
		cleanup()
	})

	Describe("GetInfo", func() {
		It("decodes both records", func() {
			info, err := ctrl.GetInfo()
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Descriptor).To(Equal(desc))
			Expect(info.Descriptor.Formats()).To(Equal([]logo.Format{logo.JPG, logo.PNG}))
			Expect(info.Version()).To(Equal(logo.VersionSHA256))
			Expect(info.DescriptorVar.String()).To(Equal("LBLDESP-871455d0-5576-4fb8-9865-af0824463b9e"))
			Expect(info.CheckVar.String()).To(Equal("LBLDVC-871455d1-5576-4fb8-9865-af0824463c9f"))
		})
		It("fails without descriptor", func() {
			vars = efimock.NewMockEFIVariables().Set(logo.CheckName, logo.CheckGUID, check.Encode())
			ctrl = logo.NewController(s, vars, caps, logo.WithNameScan(true))
			_, err := ctrl.GetInfo()
			Expect(err).To(MatchError(logo.ErrVariableRead))
		})
		It("fails on unreadable descriptors", func() {
			vars.WithReadError(logo.DescriptorName, efi.ErrVarPermission)
			_, err := ctrl.GetInfo()
			Expect(err).To(MatchError(logo.ErrVariableRead))
			Expect(err).To(MatchError(efi.ErrVarPermission))
		})
		It("fails on records of the wrong size", func() {
			vars.Set(logo.DescriptorName, logo.DescriptorGUID, make([]byte, 11))
			_, err := ctrl.GetInfo()
			Expect(err).To(MatchError(logo.ErrSizeMismatch))

			setup()
			vars.Set(logo.CheckName, logo.CheckGUID, make([]byte, 36))
			_, err = ctrl.GetInfo()
			Expect(err).To(MatchError(logo.ErrSizeMismatch))
		})
		It("succeeds without device check", func() {
			vars = efimock.NewMockEFIVariables().Set(logo.DescriptorName, logo.DescriptorGUID, desc.Encode())
			ctrl = logo.NewController(s, vars, caps)
			info, err := ctrl.GetInfo()
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Check).To(BeNil())
			Expect(info.Version()).To(BeZero())
		})
		It("adopts the first variable matching the record name", func() {
			other, err := efi.DecodeGUIDString("00000000-0000-0000-0000-000000000001")
			Expect(err).NotTo(HaveOccurred())
			vars = efimock.NewMockEFIVariables().
				Set("Boot0000", other, []byte{1}).
				Set("LBLDESP", other, desc.Encode()).
				Set("LBLDESP2", other, make([]byte, 3)).
				Set("LBLDVC", other, check.Encode())
			ctrl = logo.NewController(s, vars, caps, logo.WithNameScan(true))
			info, err := ctrl.GetInfo()
			Expect(err).NotTo(HaveOccurred())
			Expect(info.DescriptorVar).To(Equal(logo.VarID{Name: "LBLDESP", GUID: other}))
			Expect(info.CheckVar).To(Equal(logo.VarID{Name: "LBLDVC", GUID: other}))
		})
		It("does not scan when disabled", func() {
			other, err := efi.DecodeGUIDString("00000000-0000-0000-0000-000000000001")
			Expect(err).NotTo(HaveOccurred())
			vars = efimock.NewMockEFIVariables().Set("LBLDESP", other, desc.Encode())
			ctrl = logo.NewController(s, vars, caps, logo.WithNameScan(false))
			_, err = ctrl.GetInfo()
			Expect(err).To(MatchError(efi.ErrVarNotExist))
		})
	})

	Describe("SetLogo", func() {
		It("stages the logo, enables it and records its SHA-256", func() {
			info, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).NotTo(HaveOccurred())

			data, err := fs.ReadFile("/esp/EFI/Vendor/Logo/mylogo_1920x1080.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(pngData))
			Expect(vfs.Exists(fs, "/esp/EFI/Vendor/Logo/mylogo_640x480.bmp")).To(BeFalse())
			Expect(caps.UnmountCalls).To(Equal(1))

			sum := sha256.Sum256([]byte(pngData))
			Expect(descriptor().Enable).To(Equal(uint8(1)))
			Expect(deviceCheck()[4:36]).To(Equal(sum[:]))
			Expect(deviceCheck()[36:]).To(Equal([]byte{0, 0, 0, 0}))

			Expect(info.Descriptor.Enabled()).To(BeTrue())
			Expect(info.Check.Checksum()[:32]).To(Equal(sum[:]))
			again, err := ctrl.GetInfo()
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(info))
		})
		It("records a CRC-32 of the first 512 bytes", func() {
			check = logo.DeviceCheck{Version: logo.VersionCRC32}
			setup()
			_, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(deviceCheck()[4:8]).To(Equal(crcBytes(pngData[:512])))
			Expect(deviceCheck()[8:]).To(Equal(make([]byte, 32)))
		})
		It("lifts immutability around every write", func() {
			_, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(caps.Toggles).To(Equal([]platmock.Toggle{
				{Name: logo.DescriptorName, Immutable: false},
				{Name: logo.DescriptorName, Immutable: true},
				{Name: logo.CheckName, Immutable: false},
				{Name: logo.CheckName, Immutable: true},
			}))
		})
		It("writes even if immutability cannot be toggled", func() {
			caps.ErrorOnToggle = true
			_, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(descriptor().Enable).To(Equal(uint8(1)))
			Expect(buf.String()).To(ContainSubstring("immutab"))
		})
		It("lower cases the extension", func() {
			_, err := ctrl.SetLogo("/home/user/logo.JPG")
			Expect(err).NotTo(HaveOccurred())
			Expect(vfs.Exists(fs, "/esp/EFI/Vendor/Logo/mylogo_1920x1080.jpg")).To(BeTrue())
		})
		It("refuses unsupported versions without touching anything", func() {
			desc.Enable = 0
			check = logo.DeviceCheck{Version: 0x1}
			setup()
			info, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).To(MatchError(logo.ErrUnsupportedVersion))
			Expect(info.Descriptor.Enable).To(BeZero())
			Expect(descriptor().Enable).To(BeZero())
			Expect(vars.Writes).To(BeZero())
			Expect(caps.MountCalls).To(BeZero())
		})
		It("keeps an already enabled descriptor on unsupported versions", func() {
			desc.Enable = 1
			check = logo.DeviceCheck{Version: 0x1}
			setup()
			_, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).To(HaveOccurred())
			Expect(descriptor().Enable).To(Equal(uint8(1)))
		})
		It("refuses formats the firmware does not support", func() {
			Expect(fs.WriteFile("/home/user/logo.gif", []byte("gif"), vfs.FilePerm)).To(Succeed())
			_, err := ctrl.SetLogo("/home/user/logo.gif")
			Expect(err).To(MatchError(logo.ErrStagingFailed))
			_, err = ctrl.SetLogo("/home/user/noext")
			Expect(err).To(MatchError(logo.ErrStagingFailed))
			Expect(caps.MountCalls).To(BeZero())
			Expect(vars.Writes).To(BeZero())
		})
		It("does not touch variables when staging fails", func() {
			caps.ErrorOnMount = true
			_, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).To(MatchError(logo.ErrStagingFailed))
			Expect(vars.Writes).To(BeZero())

			caps.ErrorOnMount = false
			_, err = ctrl.SetLogo("/home/user/missing.png")
			Expect(err).To(MatchError(logo.ErrStagingFailed))
			Expect(vars.Writes).To(BeZero())
		})
		It("does not compute the checksum if enabling fails", func() {
			vars.WithWriteError(logo.DescriptorName, efi.ErrVarPermission)
			_, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).To(MatchError(logo.ErrVariableWrite))
			Expect(deviceCheck()).To(Equal(check.Encode()))
			Expect(caps.Toggles).To(HaveLen(2))
		})
		It("keeps the enable flag when the checksum write fails", func() {
			vars.WithWriteError(logo.CheckName, efi.ErrVarPermission)
			info, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).To(MatchError(logo.ErrVariableWrite))
			Expect(info.Descriptor.Enable).To(Equal(uint8(1)))
			Expect(info.Check.ChecksumCleared()).To(BeTrue())
		})
		It("skips the checksum without device check", func() {
			vars = efimock.NewMockEFIVariables().Set(logo.DescriptorName, logo.DescriptorGUID, desc.Encode())
			ctrl = logo.NewController(s, vars, caps, logo.WithVendor("Vendor"))
			info, err := ctrl.SetLogo("/home/user/logo.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Descriptor.Enabled()).To(BeTrue())
			Expect(vars.Writes).To(Equal(1))
			Expect(buf.String()).To(ContainSubstring("checksum skipped"))
		})
	})

	Describe("RestoreLogo", func() {
		BeforeEach(func() {
			desc.Enable = 1
			for i := range check.Data {
				check.Data[i] = 0xcc
			}
			setup()
		})
		It("removes the staged logo, disables it and clears the checksum", func() {
			info, err := ctrl.RestoreLogo()
			Expect(err).NotTo(HaveOccurred())
			Expect(vfs.Exists(fs, "/esp/EFI/Vendor/Logo")).To(BeFalse())
			Expect(vfs.Exists(fs, "/esp/EFI/BOOT/BOOTX64.EFI")).To(BeTrue())
			Expect(info.Descriptor.Enabled()).To(BeFalse())
			Expect(deviceCheck()[4:]).To(Equal(make([]byte, 36)))
			Expect(caps.UnmountCalls).To(Equal(1))
		})
		It("only clears the CRC-32 bytes for CRC-32 checks", func() {
			check.Version = logo.VersionCRC32
			setup()
			_, err := ctrl.RestoreLogo()
			Expect(err).NotTo(HaveOccurred())
			Expect(deviceCheck()[:4]).To(Equal([]byte{0x00, 0x00, 0x02, 0x00}))
			Expect(deviceCheck()[4:8]).To(Equal([]byte{0, 0, 0, 0}))
			Expect(deviceCheck()[8:]).To(Equal(bytes.Repeat([]byte{0xcc}, 32)))
		})
		It("is idempotent", func() {
			_, err := ctrl.RestoreLogo()
			Expect(err).NotTo(HaveOccurred())
			writes := vars.Writes
			descData := vars.Data(logo.DescriptorName, logo.DescriptorGUID)
			checkData := deviceCheck()

			_, err = ctrl.RestoreLogo()
			Expect(err).NotTo(HaveOccurred())
			Expect(vars.Writes).To(Equal(writes))
			Expect(vars.Data(logo.DescriptorName, logo.DescriptorGUID)).To(Equal(descData))
			Expect(deviceCheck()).To(Equal(checkData))
		})
		It("attempts every step", func() {
			caps.ErrorOnAcquire = true
			vars.WithWriteError(logo.DescriptorName, errors.New("write protected"))
			_, err := ctrl.RestoreLogo()
			Expect(err).To(MatchError(logo.ErrStagingFailed))
			Expect(err).To(MatchError(logo.ErrVariableWrite))
			Expect(deviceCheck()[4:]).To(Equal(make([]byte, 36)))
		})
		It("fails if the records cannot be read", func() {
			vars.WithReadError(logo.DescriptorName, efi.ErrVarPermission)
			info, err := ctrl.RestoreLogo()
			Expect(err).To(MatchError(logo.ErrVariableRead))
			Expect(info).To(BeNil())
			Expect(vfs.Exists(fs, "/esp/EFI/Vendor/Logo")).To(BeFalse())
		})
	})

	It("sets and restores end to end", func() {
		_, err := ctrl.SetLogo("/home/user/logo.png")
		Expect(err).NotTo(HaveOccurred())
		info, err := ctrl.RestoreLogo()
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Descriptor).To(Equal(desc))
		Expect(deviceCheck()).To(Equal(check.Encode()))
		Expect(caps.Mounted).To(BeFalse())
		Expect(caps.MountCalls).To(Equal(caps.UnmountCalls))
	})
})
