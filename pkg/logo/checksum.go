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
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/suse/bootlogo/pkg/sys/vfs"
)

// crcPrefixSize is the amount of leading logo bytes covered by CRC-32 checks
const crcPrefixSize = 512

// Checksum computes the logo checksum the firmware verifies for the given
// protocol version: a little endian CRC-32 over the first 512 bytes for
// VersionCRC32, a SHA-256 over the whole file for VersionSHA256.
func Checksum(fs vfs.FS, path string, version uint32) ([]byte, error) {
	switch version {
	case VersionCRC32, VersionSHA256:
	default:
		return nil, fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, version)
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChecksumFailed, err)
	}
	defer f.Close()

	if version == VersionSHA256 {
		h := sha256.New()
		if _, err = io.Copy(h, f); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrChecksumFailed, path, err)
		}
		return h.Sum(nil), nil
	}

	prefix := make([]byte, crcPrefixSize)
	n, err := io.ReadFull(f, prefix)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrChecksumFailed, path, err)
	}
	return binary.LittleEndian.AppendUint32(nil, crc32.ChecksumIEEE(prefix[:n])), nil
}
