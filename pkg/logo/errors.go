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

import "errors"

var (
	// ErrVariableRead is returned when a record is missing or cannot be read
	ErrVariableRead = errors.New("reading firmware variable")
	// ErrVariableWrite is returned when the firmware refuses a record update
	ErrVariableWrite = errors.New("writing firmware variable")
	// ErrSizeMismatch is returned for records of unexpected length, they are never repaired
	ErrSizeMismatch = errors.New("unexpected firmware variable size")
	// ErrUnsupportedVersion is returned for unknown device check protocol versions
	ErrUnsupportedVersion = errors.New("unsupported protocol version")
	ErrStagingFailed      = errors.New("staging logo on the ESP")
	ErrChecksumFailed     = errors.New("computing logo checksum")
	ErrImmutability       = errors.New("toggling firmware variable immutability")
	ErrPrivilege          = errors.New("administrator privileges required")
)
