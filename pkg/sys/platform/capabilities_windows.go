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
	"strings"

	"golang.org/x/sys/windows"

	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/sys"
)

const bcdedit = "bcdedit"

type windowsCaps struct {
	s      *sys.System
	drives func() (uint32, error)
}

var _ Capabilities = (*windowsCaps)(nil)

// New returns the Capabilities of the running platform
func New(s *sys.System, opts ...Option) Capabilities {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &windowsCaps{s: s, drives: windows.GetLogicalDrives}
}

func (w windowsCaps) IsPrivileged() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// AcquireMountPoint picks the first drive letter not in use
func (w windowsCaps) AcquireMountPoint() (MountPoint, error) {
	mask, err := w.drives()
	if err != nil {
		return MountPoint{}, fmt.Errorf("%w: listing logical drives: %w", ErrNoMountPoint, err)
	}
	letter, ok := firstFreeDriveLetter(mask)
	if !ok {
		return MountPoint{}, fmt.Errorf("%w: every drive letter is in use", ErrNoMountPoint)
	}
	return MountPoint{Path: letter + ":"}, nil
}

func (w windowsCaps) Mount(mp MountPoint) error {
	return w.s.Mounter().Mount(mp.Device, mp.Path, "vfat", nil)
}

func (w windowsCaps) Unmount(mp MountPoint) error {
	return w.s.Mounter().Unmount(mp.Path)
}

func (w windowsCaps) Sync() {}

func (w windowsCaps) ToggleImmutable(string, efi.GUID, bool) error {
	return nil
}

func (w windowsCaps) BootSplashVisible() (bool, error) {
	out, err := w.s.Runner().Run(bcdedit, "/enum", "all")
	if err != nil {
		return false, fmt.Errorf("querying boot configuration: %w", err)
	}
	return !bootUXDisabled(string(out)), nil
}

func (w windowsCaps) SetBootSplashVisible(visible bool) error {
	value := "on"
	if visible {
		value = "off"
	}
	out, err := w.s.Runner().Run(bcdedit, "-set", bootUXDisabledFlag, value)
	if err != nil {
		return fmt.Errorf("setting %s %s: %w: %s", bootUXDisabledFlag, value, err, strings.TrimSpace(string(out)))
	}
	return nil
}
