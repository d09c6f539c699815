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

// Package mountvol mounts the EFI System Partition on Windows through the
// mountvol utility. The ESP is always addressed as the system partition
// (`/s`), so the source given to Mount is only recorded, never passed on.
package mountvol

import (
	"fmt"
	"strings"
	"sync"

	"github.com/suse/bootlogo/pkg/sys/mounter"
)

const (
	Binary = "mountvol"
	// ESPDevice is the pseudo device name reported for mounts done by this mounter
	ESPDevice = "ESP"
	FSType    = "vfat"
)

type cmdRunner interface {
	Run(cmd string, args ...string) ([]byte, error)
}

type Mounter struct {
	runner cmdRunner
	mu     sync.Mutex
	mounts map[string]mounter.MountPoint
}

var _ mounter.Interface = (*Mounter)(nil)

func NewMounter(r cmdRunner) *Mounter {
	return &Mounter{runner: r, mounts: map[string]mounter.MountPoint{}}
}

// Mount assigns the system partition to the drive letter of the given target
func (m *Mounter) Mount(source string, target string, _ string, options []string) error {
	drive, err := DriveOf(target)
	if err != nil {
		return err
	}
	out, err := m.runner.Run(Binary, drive, "/s")
	if err != nil {
		return fmt.Errorf("mountvol %s /s: %w: %s", drive, err, strings.TrimSpace(string(out)))
	}
	if source == "" {
		source = ESPDevice
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounts[drive] = mounter.MountPoint{Device: source, Path: drive + `\`, Type: FSType, Opts: options}
	return nil
}

// Unmount removes the drive letter assignment of the given target
func (m *Mounter) Unmount(target string) error {
	drive, err := DriveOf(target)
	if err != nil {
		return err
	}
	out, err := m.runner.Run(Binary, drive, "/d")
	if err != nil {
		return fmt.Errorf("mountvol %s /d: %w: %s", drive, err, strings.TrimSpace(string(out)))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.mounts, drive)
	return nil
}

func (m *Mounter) IsMountPoint(path string) (bool, error) {
	drive, err := DriveOf(path)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.mounts[drive]
	return ok, nil
}

func (m *Mounter) GetMountPoints(device string) ([]mounter.MountPoint, error) {
	lst, _ := m.List()
	var res []mounter.MountPoint
	for _, mp := range lst {
		if mp.Device == device {
			res = append(res, mp)
		}
	}
	return res, nil
}

// List only reports the drives mounted through this mounter
func (m *Mounter) List() ([]mounter.MountPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lst := make([]mounter.MountPoint, 0, len(m.mounts))
	for _, mp := range m.mounts {
		lst = append(lst, mp)
	}
	return lst, nil
}

// DriveOf returns the "X:" form of a drive letter path such as "x", "X:" or `X:\EFI`
func DriveOf(path string) (string, error) {
	vol := path
	if i := strings.Index(path, ":"); i >= 0 {
		vol = path[:i]
	}
	if len(vol) != 1 {
		return "", fmt.Errorf("invalid drive letter path '%s'", path)
	}
	c := strings.ToUpper(vol)[0]
	if c < 'A' || c > 'Z' {
		return "", fmt.Errorf("invalid drive letter path '%s'", path)
	}
	return string(c) + ":", nil
}
