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
	"fmt"

	gvfs "github.com/twpayne/go-vfs/v4"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/suse/bootlogo/pkg/sys/vfs"
)

// TestFS creates a temporary filesystem rooted on a temporary directory
// populated with the given root description, see vfst.NewTestFS.
func TestFS(root any) (vfs.FS, func(), error) {
	tfs, cleanup, err := vfst.NewTestFS(root)
	if err != nil {
		return nil, func() {}, err
	}
	return tfs, cleanup, nil
}

// ReadOnlyTestFS wraps the given test filesystem so every write fails
func ReadOnlyTestFS(fs vfs.FS) (vfs.FS, error) {
	gfs, ok := fs.(gvfs.FS)
	if !ok {
		return nil, fmt.Errorf("filesystem %T can't be wrapped as read only", fs)
	}
	return gvfs.NewReadOnlyFS(gfs), nil
}
