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

package mock

import (
	"errors"

	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/sys/platform"
)

// Toggle records a single ToggleImmutable call
type Toggle struct {
	Name      string
	Immutable bool
}

// Capabilities is a configurable platform double recording mount and
// immutability activity
type Capabilities struct {
	Privileged     bool
	Point          platform.MountPoint
	ErrorOnAcquire bool
	ErrorOnMount   bool
	ErrorOnUnmount bool
	ErrorOnToggle  bool
	SplashVisible  bool

	MountCalls   int
	UnmountCalls int
	SyncCalls    int
	Toggles      []Toggle
	// Mounted is true between a successful Mount and the following Unmount
	Mounted bool
}

var _ platform.Capabilities = (*Capabilities)(nil)

// NewCapabilities returns a privileged platform whose ESP lives at the given root
func NewCapabilities(root string) *Capabilities {
	return &Capabilities{
		Privileged:    true,
		Point:         platform.MountPoint{Device: "/dev/esp", Path: root},
		SplashVisible: true,
	}
}

func (c *Capabilities) IsPrivileged() bool {
	return c.Privileged
}

func (c *Capabilities) AcquireMountPoint() (platform.MountPoint, error) {
	if c.ErrorOnAcquire {
		return platform.MountPoint{}, platform.ErrNoMountPoint
	}
	return c.Point, nil
}

func (c *Capabilities) Mount(platform.MountPoint) error {
	c.MountCalls++
	if c.ErrorOnMount {
		return errors.New("mount error")
	}
	c.Mounted = true
	return nil
}

func (c *Capabilities) Unmount(platform.MountPoint) error {
	c.UnmountCalls++
	if c.ErrorOnUnmount {
		return errors.New("unmount error")
	}
	c.Mounted = false
	return nil
}

func (c *Capabilities) Sync() {
	c.SyncCalls++
}

func (c *Capabilities) ToggleImmutable(name string, _ efi.GUID, immutable bool) error {
	c.Toggles = append(c.Toggles, Toggle{Name: name, Immutable: immutable})
	if c.ErrorOnToggle {
		return errors.New("toggle error")
	}
	return nil
}

func (c *Capabilities) BootSplashVisible() (bool, error) {
	return c.SplashVisible, nil
}

func (c *Capabilities) SetBootSplashVisible(visible bool) error {
	c.SplashVisible = visible
	return nil
}
