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

package logo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	DescriptorSize = 10
	CheckSize      = 40

	// VersionCRC32 device checks carry a CRC-32 of the first 512 bytes of the logo
	VersionCRC32 uint32 = 0x20000
	// VersionSHA256 device checks carry a SHA-256 of the whole logo
	VersionSHA256 uint32 = 0x20003

	checksumOffset = 4
	crc32Size      = 4
)

type Format string

const (
	JPG Format = "jpg"
	TGA Format = "tga"
	PCX Format = "pcx"
	GIF Format = "gif"
	BMP Format = "bmp"
	PNG Format = "png"
)

// formatBits maps support mask bits to formats, in reporting order
var formatBits = []struct {
	bit    uint8
	format Format
}{
	{0x01, JPG},
	{0x02, TGA},
	{0x04, PCX},
	{0x08, GIF},
	{0x10, BMP},
	{0x20, PNG},
}

// FormatsOf lists the formats enabled in a support mask
func FormatsOf(mask uint8) []Format {
	formats := []Format{}
	for _, f := range formatBits {
		if mask&f.bit != 0 {
			formats = append(formats, f.format)
		}
	}
	return formats
}

// DeviceDescriptor is the record describing the logo the firmware accepts
type DeviceDescriptor struct {
	Enable      uint8
	Width       uint32
	Height      uint32
	SupportMask uint8
}

func DecodeDescriptor(data []byte) (DeviceDescriptor, error) {
	if len(data) != DescriptorSize {
		return DeviceDescriptor{}, fmt.Errorf("%w: device descriptor is %d bytes, expected %d", ErrSizeMismatch, len(data), DescriptorSize)
	}
	return DeviceDescriptor{
		Enable:      data[0],
		Width:       binary.LittleEndian.Uint32(data[1:5]),
		Height:      binary.LittleEndian.Uint32(data[5:9]),
		SupportMask: data[9],
	}, nil
}

func (d DeviceDescriptor) Encode() []byte {
	data := make([]byte, DescriptorSize)
	data[0] = d.Enable
	binary.LittleEndian.PutUint32(data[1:5], d.Width)
	binary.LittleEndian.PutUint32(data[5:9], d.Height)
	data[9] = d.SupportMask
	return data
}

func (d DeviceDescriptor) Enabled() bool {
	return d.Enable != 0
}

func (d DeviceDescriptor) Formats() []Format {
	return FormatsOf(d.SupportMask)
}

// Supports reports whether a file extension, with or without the leading
// dot, is one of the accepted formats
func (d DeviceDescriptor) Supports(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, f := range d.Formats() {
		if string(f) == ext {
			return true
		}
	}
	return false
}

// DeviceCheck is the record carrying the protocol version and the checksum
// of the staged logo. Bytes not owned by the current version are kept as read.
type DeviceCheck struct {
	Version uint32
	Data    [CheckSize - checksumOffset]byte
}

func DecodeCheck(data []byte) (DeviceCheck, error) {
	if len(data) != CheckSize {
		return DeviceCheck{}, fmt.Errorf("%w: device check is %d bytes, expected %d", ErrSizeMismatch, len(data), CheckSize)
	}
	c := DeviceCheck{Version: binary.LittleEndian.Uint32(data[:checksumOffset])}
	copy(c.Data[:], data[checksumOffset:])
	return c, nil
}

func (c DeviceCheck) Encode() []byte {
	data := make([]byte, CheckSize)
	binary.LittleEndian.PutUint32(data[:checksumOffset], c.Version)
	copy(data[checksumOffset:], c.Data[:])
	return data
}

// Supported reports whether checksums can be computed for the version
func (c DeviceCheck) Supported() bool {
	return c.Version == VersionCRC32 || c.Version == VersionSHA256
}

// ownedLen is the checksum region length cleared on restore, the full tail
// for anything but CRC-32 checks
func (c DeviceCheck) ownedLen() int {
	if c.Version == VersionCRC32 {
		return crc32Size
	}
	return len(c.Data)
}

// Checksum returns the checksum bytes owned by the current version
func (c DeviceCheck) Checksum() []byte {
	return bytes.Clone(c.Data[:c.ownedLen()])
}

// SetChecksum stores sum right after the version field
func (c *DeviceCheck) SetChecksum(sum []byte) error {
	if len(sum) > len(c.Data) {
		return fmt.Errorf("checksum of %d bytes does not fit the device check", len(sum))
	}
	copy(c.Data[:], sum)
	return nil
}

func (c DeviceCheck) ChecksumCleared() bool {
	for _, b := range c.Data[:c.ownedLen()] {
		if b != 0 {
			return false
		}
	}
	return true
}

// ClearChecksum zeroes the checksum region owned by the current version
func (c *DeviceCheck) ClearChecksum() {
	clear(c.Data[:c.ownedLen()])
}
