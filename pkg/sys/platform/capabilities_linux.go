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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/suse/bootlogo/pkg/block"
	"github.com/suse/bootlogo/pkg/block/ghw"
	"github.com/suse/bootlogo/pkg/block/lsblk"
	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/sys"
	"github.com/suse/bootlogo/pkg/sys/vfs"
)

const (
	espFSType = "vfat"
	espMount  = "/boot/efi"
)

type linux struct {
	s    *sys.System
	opts *options
	euid func() int
}

var _ Capabilities = (*linux)(nil)

// New returns the Capabilities of the running platform
func New(s *sys.System, opts ...Option) Capabilities {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.devices == nil {
		o.devices = []block.Device{lsblk.NewLsDevice(s), ghw.NewGhwDevice(s)}
	}
	return &linux{s: s, opts: o, euid: unix.Geteuid}
}

func (l linux) IsPrivileged() bool {
	return l.euid() == 0
}

// AcquireMountPoint finds the ESP block device and pairs it with the scratch directory
func (l linux) AcquireMountPoint() (MountPoint, error) {
	device, err := l.findESP()
	if err != nil {
		return MountPoint{}, err
	}
	l.s.Logger().Debug("found EFI system partition %s", device)
	return MountPoint{Device: device, Path: l.opts.mountDir}, nil
}

func (l linux) findESP() (string, error) {
	esp, err := block.FindESP(l.s, l.opts.attempts, l.opts.interval, l.opts.devices...)
	if err == nil {
		return esp.Path, nil
	}
	l.s.Logger().Debug("partition scan did not find the ESP, checking active mounts: %v", err)

	mnts, lErr := l.s.Mounter().List()
	if lErr != nil {
		return "", fmt.Errorf("%w: listing mounts: %w", ErrNoMountPoint, lErr)
	}
	for _, m := range mnts {
		if m.Path == espMount || (m.Type == espFSType && strings.Contains(strings.ToLower(m.Path), "efi")) {
			return m.Device, nil
		}
	}
	return "", fmt.Errorf("%w: %w", ErrNoMountPoint, err)
}

func (l linux) Mount(mp MountPoint) error {
	if mp.Device == "" {
		return fmt.Errorf("%w: missing ESP device", ErrNoMountPoint)
	}
	if err := vfs.MkdirAll(l.s.FS(), mp.Path, vfs.DirPerm); err != nil {
		return fmt.Errorf("creating mount point %s: %w", mp.Path, err)
	}
	if err := l.s.Mounter().Mount(mp.Device, mp.Path, espFSType, []string{"rw"}); err != nil {
		return fmt.Errorf("mounting %s at %s: %w", mp.Device, mp.Path, err)
	}
	return nil
}

func (l linux) Unmount(mp MountPoint) error {
	if err := l.s.Mounter().Unmount(mp.Path); err != nil {
		return fmt.Errorf("unmounting %s: %w", mp.Path, err)
	}
	return nil
}

func (l linux) Sync() {
	_, _ = l.s.Runner().Run("sync")
}

// ToggleImmutable flips FS_IMMUTABLE_FL on the efivarfs node of the variable
func (l linux) ToggleImmutable(name string, guid efi.GUID, immutable bool) error {
	path := filepath.Join(l.opts.efivarsDir, efi.VarName(name, guid))
	f, err := l.s.FS().OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	flags, err := unix.IoctlGetUint32(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		return fmt.Errorf("reading attributes of %s: %w", path, err)
	}
	updated := setImmutable(flags, immutable)
	if updated == flags {
		return nil
	}
	if err = unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, int(updated)); err != nil {
		return fmt.Errorf("setting attributes of %s: %w", path, err)
	}
	return nil
}

// BootSplashVisible has no Linux counterpart, the splash is always reported visible
func (l linux) BootSplashVisible() (bool, error) {
	return true, nil
}

func (l linux) SetBootSplashVisible(visible bool) error {
	l.s.Logger().Info("Boot splash visibility is not configurable on Linux, ignoring request (visible=%t)", visible)
	return nil
}
