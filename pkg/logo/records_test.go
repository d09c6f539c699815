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
	"math/bits"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/suse/bootlogo/pkg/logo"
)

var _ = Describe("Records", Label("logo", "records"), func() {
	It("round trips device descriptors", func() {
		for _, enable := range []uint8{0, 1, 0xff} {
			for _, width := range []uint32{0, 1, 1920, 0xdeadbeef, 0xffffffff} {
				for mask := range 256 {
					d := logo.DeviceDescriptor{Enable: enable, Width: width, Height: width ^ 0x5a5a5a5a, SupportMask: uint8(mask)}
					data := d.Encode()
					Expect(data).To(HaveLen(logo.DescriptorSize))
					decoded, err := logo.DecodeDescriptor(data)
					Expect(err).NotTo(HaveOccurred())
					Expect(decoded).To(Equal(d))
					Expect(decoded.Encode()).To(Equal(data))
				}
			}
		}
	})
	It("encodes descriptor fields little endian", func() {
		d := logo.DeviceDescriptor{Enable: 1, Width: 1920, Height: 1080, SupportMask: 0x21}
		Expect(d.Encode()).To(Equal([]byte{1, 0x80, 0x07, 0, 0, 0x38, 0x04, 0, 0, 0x21}))
	})
	It("rejects records of the wrong size", func() {
		_, err := logo.DecodeDescriptor(make([]byte, 9))
		Expect(err).To(MatchError(logo.ErrSizeMismatch))
		_, err = logo.DecodeCheck(make([]byte, 41))
		Expect(err).To(MatchError(logo.ErrSizeMismatch))
	})
	It("maps the support mask bits in fixed order", func() {
		Expect(logo.FormatsOf(0)).To(BeEmpty())
		Expect(logo.FormatsOf(0x21)).To(Equal([]logo.Format{logo.JPG, logo.PNG}))
		Expect(logo.FormatsOf(0x3f)).To(Equal([]logo.Format{logo.JPG, logo.TGA, logo.PCX, logo.GIF, logo.BMP, logo.PNG}))

		order := map[logo.Format]int{logo.JPG: 0, logo.TGA: 1, logo.PCX: 2, logo.GIF: 3, logo.BMP: 4, logo.PNG: 5}
		for mask := range 0x40 {
			formats := logo.FormatsOf(uint8(mask))
			Expect(formats).To(HaveLen(bits.OnesCount8(uint8(mask))))
			last := -1
			for _, f := range formats {
				Expect(mask & (1 << order[f])).NotTo(BeZero())
				Expect(order[f]).To(BeNumerically(">", last))
				last = order[f]
			}
		}
	})
	It("checks supported extensions", func() {
		d := logo.DeviceDescriptor{SupportMask: 0x30}
		Expect(d.Supports("png")).To(BeTrue())
		Expect(d.Supports(".BMP")).To(BeTrue())
		Expect(d.Supports("jpg")).To(BeFalse())
	})
	It("round trips device checks keeping reserved bytes", func() {
		data := make([]byte, logo.CheckSize)
		for i := range data {
			data[i] = byte(i)
		}
		c, err := logo.DecodeCheck(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Version).To(Equal(uint32(0x03020100)))
		Expect(c.Encode()).To(Equal(data))
	})
	It("owns 4 checksum bytes for CRC-32 checks", func() {
		c := logo.DeviceCheck{Version: logo.VersionCRC32}
		for i := range c.Data {
			c.Data[i] = 0xaa
		}
		Expect(c.Checksum()).To(Equal([]byte{0xaa, 0xaa, 0xaa, 0xaa}))
		Expect(c.ChecksumCleared()).To(BeFalse())
		c.ClearChecksum()
		Expect(c.ChecksumCleared()).To(BeTrue())
		encoded := c.Encode()
		Expect(encoded[4:8]).To(Equal([]byte{0, 0, 0, 0}))
		for _, b := range encoded[8:] {
			Expect(b).To(Equal(byte(0xaa)))
		}
	})
	It("owns the whole tail for any other version", func() {
		for _, v := range []uint32{logo.VersionSHA256, 0x1} {
			c := logo.DeviceCheck{Version: v}
			c.Data[35] = 1
			Expect(c.ChecksumCleared()).To(BeFalse())
			c.ClearChecksum()
			Expect(c.Data).To(Equal([36]byte{}))
		}
		Expect(logo.DeviceCheck{Version: 0x1}.Supported()).To(BeFalse())
	})
	It("refuses checksums larger than the record", func() {
		c := logo.DeviceCheck{}
		Expect(c.SetChecksum(make([]byte, 37))).NotTo(Succeed())
		Expect(c.SetChecksum([]byte{1, 2, 3, 4})).To(Succeed())
		Expect(c.Data[:4]).To(Equal([]byte{1, 2, 3, 4}))
	})
})
