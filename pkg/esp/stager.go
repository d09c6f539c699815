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
	"errors"
	"fmt"
	"path/filepath"

	"github.com/suse/bootlogo/pkg/sys"
	"github.com/suse/bootlogo/pkg/sys/platform"
	"github.com/suse/bootlogo/pkg/sys/vfs"
)

var ErrNotRegularFile = errors.New("not a regular file")

// Stager copies files into, and removes directories from, the ESP
type Stager struct {
	s    *sys.System
	caps platform.Capabilities
}

func NewStager(s *sys.System, caps platform.Capabilities) *Stager {
	return &Stager{s: s, caps: caps}
}

// Stage copies src to dst, a path relative to the ESP root. The parent
// directory of dst is recreated from scratch, so anything staged there
// before is gone afterwards.
func (st *Stager) Stage(src, dst string) error {
	ok, err := vfs.IsRegularFile(st.s.FS(), src)
	if err != nil {
		return fmt.Errorf("checking %s: %w", src, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", src, ErrNotRegularFile)
	}

	return WithMountedESP(st.s.Logger(), st.caps, func(root string) error {
		target := filepath.Join(root, dst)
		dir := filepath.Dir(target)
		if err := vfs.RemoveAll(st.s.FS(), dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
		if err := vfs.MkdirAll(st.s.FS(), dir, vfs.DirPerm); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		if err := vfs.CopyFile(st.s.FS(), src, target); err != nil {
			return fmt.Errorf("copying %s to %s: %w", src, target, err)
		}
		st.caps.Sync()
		st.s.Logger().Info("Staged %s to %s", src, dst)
		return nil
	})
}

// Delete removes dir, a path relative to the ESP root, and everything
// below it. A missing directory is not an error.
func (st *Stager) Delete(dir string) error {
	return WithMountedESP(st.s.Logger(), st.caps, func(root string) error {
		target := filepath.Join(root, dir)
		exists, err := vfs.Exists(st.s.FS(), target)
		if err != nil {
			return fmt.Errorf("checking %s: %w", target, err)
		}
		if !exists {
			st.s.Logger().Debug("%s not found in the ESP, nothing to delete", dir)
			return nil
		}
		if err = vfs.RemoveAll(st.s.FS(), target); err != nil {
			return fmt.Errorf("removing %s: %w", target, err)
		}
		st.caps.Sync()
		st.s.Logger().Info("Removed %s from the ESP", dir)
		return nil
	})
}
