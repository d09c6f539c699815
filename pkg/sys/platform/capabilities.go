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
	"errors"
	"strings"
	"time"

	"github.com/suse/bootlogo/pkg/block"
	"github.com/suse/bootlogo/pkg/efi"
)

const (
	DefaultMountDir    = "/tmp/lenovo_esp_mount"
	DefaultEfivarsDir  = "/sys/firmware/efi/efivars"
	DefaultAttempts    = 3
	DefaultInterval    = time.Second
	fsImmutableFlag    = 0x10
	bootUXDisabledFlag = "bootuxdisabled"
)

var (
	ErrNoMountPoint = errors.New("no mount point available")
	ErrUnsupported  = errors.New("operation not supported on this platform")
)

// MountPoint is the place the ESP gets mounted at: a scratch directory on
// Linux, a drive letter such as "E:" on Windows
type MountPoint struct {
	Device string
	Path   string
}

// Root returns the directory to resolve ESP relative paths against
func (m MountPoint) Root() string {
	if strings.HasSuffix(m.Path, ":") {
		return m.Path + `\`
	}
	return m.Path
}

// Capabilities isolates every OS specific call the logo tooling relies on
type Capabilities interface {
	// IsPrivileged is true if the process can read and write firmware variables
	IsPrivileged() bool
	AcquireMountPoint() (MountPoint, error)
	Mount(MountPoint) error
	Unmount(MountPoint) error
	// Sync flushes filesystem buffers after the ESP content changed
	Sync()
	// ToggleImmutable sets or clears the immutable attribute of the node
	// backing a firmware variable. No-op where variables are not files.
	ToggleImmutable(name string, guid efi.GUID, immutable bool) error
	BootSplashVisible() (bool, error)
	SetBootSplashVisible(visible bool) error
}

type options struct {
	mountDir   string
	efivarsDir string
	attempts   int
	interval   time.Duration
	devices    []block.Device
}

type Option func(o *options)

func defaultOptions() *options {
	return &options{
		mountDir:   DefaultMountDir,
		efivarsDir: DefaultEfivarsDir,
		attempts:   DefaultAttempts,
		interval:   DefaultInterval,
	}
}

// WithMountDir sets the scratch directory the ESP is mounted at
func WithMountDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.mountDir = dir
		}
	}
}

// WithEfivarsDir sets the path of the firmware variables pseudo filesystem
func WithEfivarsDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.efivarsDir = dir
		}
	}
}

// WithDiscovery sets how many times and how often the ESP block device is looked up
func WithDiscovery(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.attempts = attempts
		o.interval = interval
	}
}

// WithBlockDevices replaces the block device providers used to find the ESP
func WithBlockDevices(devices ...block.Device) Option {
	return func(o *options) {
		o.devices = devices
	}
}

// firstFreeDriveLetter returns the first drive letter, A to Z, whose bit is
// unset in the logical drives bitmap
func firstFreeDriveLetter(mask uint32) (string, bool) {
	for i := range 26 {
		if mask&(1<<i) == 0 {
			return string(rune('A' + i)), true
		}
	}
	return "", false
}

func setImmutable(flags uint32, immutable bool) uint32 {
	if immutable {
		return flags | fsImmutableFlag
	}
	return flags &^ fsImmutableFlag
}

// bootUXDisabled reports whether bcdedit output turns the boot splash off
func bootUXDisabled(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(strings.ToLower(line), bootUXDisabledFlag) && strings.Contains(line, "Yes") {
			return true
		}
	}
	return false
}
