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

package efi

// Vars reports the firmware variables as unavailable on this platform
type Vars struct{}

var _ Variables = (*Vars)(nil)

func NewVars() *Vars {
	return &Vars{}
}

func (Vars) ListVariables() ([]VariableDescriptor, error) {
	return nil, ErrVarsUnavailable
}

func (Vars) GetVariable(GUID, string) ([]byte, VariableAttributes, error) {
	return nil, 0, ErrVarsUnavailable
}

func (Vars) WriteVariable(string, GUID, VariableAttributes, []byte) error {
	return ErrVarsUnavailable
}
