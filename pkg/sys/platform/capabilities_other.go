//go:build !linux && !windows

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
	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/sys"
)

type unsupported struct{}

var _ Capabilities = unsupported{}

// New returns the Capabilities of the running platform
func New(*sys.System, ...Option) Capabilities {
	return unsupported{}
}

func (unsupported) IsPrivileged() bool { return false }

func (unsupported) AcquireMountPoint() (MountPoint, error) { return MountPoint{}, ErrUnsupported }

func (unsupported) Mount(MountPoint) error { return ErrUnsupported }

func (unsupported) Unmount(MountPoint) error { return ErrUnsupported }

func (unsupported) Sync() {}

func (unsupported) ToggleImmutable(string, efi.GUID, bool) error { return nil }

func (unsupported) BootSplashVisible() (bool, error) { return true, nil }

func (unsupported) SetBootSplashVisible(bool) error { return ErrUnsupported }
