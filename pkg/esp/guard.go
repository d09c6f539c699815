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

package esp

import (
	"fmt"

	"github.com/suse/bootlogo/pkg/log"
	"github.com/suse/bootlogo/pkg/sys/platform"
	"github.com/suse/bootlogo/pkg/utils/cleanstack"
)

// MountGuard keeps the ESP mounted from a successful Acquire until Release.
// Only one guard is expected to be live at a time.
type MountGuard struct {
	logger  log.Logger
	point   platform.MountPoint
	cleanup *cleanstack.CleanStack
}

// Acquire finds a mount point for the ESP and mounts it. Nothing is left
// mounted if it fails.
func Acquire(logger log.Logger, caps platform.Capabilities) (*MountGuard, error) {
	mp, err := caps.AcquireMountPoint()
	if err != nil {
		return nil, fmt.Errorf("acquiring ESP mount point: %w", err)
	}
	if err = caps.Mount(mp); err != nil {
		return nil, fmt.Errorf("mounting ESP: %w", err)
	}
	logger.Debug("mounted ESP at %s", mp.Path)

	g := &MountGuard{logger: logger, point: mp, cleanup: cleanstack.NewCleanStack()}
	g.cleanup.Push(func() error { return caps.Unmount(mp) })
	return g, nil
}

// Root is the directory ESP relative paths resolve against
func (g *MountGuard) Root() string {
	return g.point.Root()
}

// Release unmounts the ESP. Further calls are no-ops. An unmount failure
// is only reported as a warning.
func (g *MountGuard) Release() {
	if g.cleanup == nil {
		return
	}
	cleanup := g.cleanup
	g.cleanup = nil
	if err := cleanup.Cleanup(nil); err != nil {
		g.logger.Warn("Failed to unmount ESP at %s: %v", g.point.Path, err)
		return
	}
	g.logger.Debug("unmounted ESP at %s", g.point.Path)
}

// WithMountedESP runs fn with the ESP mounted and releases the mount once
// fn returns or panics
func WithMountedESP(logger log.Logger, caps platform.Capabilities, fn func(root string) error) error {
	g, err := Acquire(logger, caps)
	if err != nil {
		return err
	}
	defer g.Release()
	return fn(g.Root())
}
