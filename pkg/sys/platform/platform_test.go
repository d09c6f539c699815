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

package platform

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Platform", Label("platform"), func() {
	It("normalizes architectures", func() {
		p, err := NewPlatform("Linux", "aarch64")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.GolangArch).To(Equal(ArchArm64))
		Expect(p.String()).To(Equal("linux/arm64"))
		Expect(p.Supported()).To(BeTrue())

		p, err = NewPlatform("windows", "amd64")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Arch).To(Equal(Archx86))
		Expect(p.Supported()).To(BeTrue())
	})
	It("rejects unknown architectures", func() {
		_, err := NewPlatform("linux", "riscv64")
		Expect(err).To(HaveOccurred())
	})
	It("does not support other operating systems", func() {
		p, err := NewPlatform("darwin", "arm64")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Supported()).To(BeFalse())
		var nilPlatform *Platform
		Expect(nilPlatform.Supported()).To(BeFalse())
		Expect(nilPlatform.String()).To(BeEmpty())
	})
})

var _ = Describe("Capability helpers", Label("platform"), func() {
	It("picks the first free drive letter", func() {
		letter, ok := firstFreeDriveLetter(0)
		Expect(ok).To(BeTrue())
		Expect(letter).To(Equal("A"))

		// A, B, C and E taken
		letter, ok = firstFreeDriveLetter(0b10111)
		Expect(ok).To(BeTrue())
		Expect(letter).To(Equal("D"))

		letter, ok = firstFreeDriveLetter(1<<25 - 1)
		Expect(ok).To(BeTrue())
		Expect(letter).To(Equal("Z"))

		_, ok = firstFreeDriveLetter(1<<26 - 1)
		Expect(ok).To(BeFalse())
	})
	It("only touches the immutable bit", func() {
		Expect(setImmutable(0x80000, true)).To(Equal(uint32(0x80010)))
		Expect(setImmutable(0x80010, false)).To(Equal(uint32(0x80000)))
		Expect(setImmutable(0x10, true)).To(Equal(uint32(0x10)))
	})
	It("detects a disabled boot splash", func() {
		out := "Windows Boot Loader\n-------------------\nidentifier {current}\nbootuxdisabled          Yes\n"
		Expect(bootUXDisabled(out)).To(BeTrue())
		Expect(bootUXDisabled("bootuxdisabled          No\n")).To(BeFalse())
		Expect(bootUXDisabled("description Windows\nnx OptIn\n")).To(BeFalse())
	})
	It("resolves the mount root", func() {
		Expect(MountPoint{Path: "E:"}.Root()).To(Equal(`E:\`))
		Expect(MountPoint{Path: "/tmp/esp"}.Root()).To(Equal("/tmp/esp"))
	})
	It("applies options", func() {
		o := defaultOptions()
		WithMountDir("")(o)
		Expect(o.mountDir).To(Equal(DefaultMountDir))
		WithMountDir("/mnt/esp")(o)
		WithEfivarsDir("/efivars")(o)
		WithDiscovery(1, 0)(o)
		Expect(o.mountDir).To(Equal("/mnt/esp"))
		Expect(o.efivarsDir).To(Equal("/efivars"))
		Expect(o.attempts).To(Equal(1))
	})
})
