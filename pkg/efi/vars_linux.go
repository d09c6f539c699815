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

import (
	efi "github.com/canonical/go-efilib"
)

// Vars accesses the firmware variables through efivarfs
type Vars struct{}

var _ Variables = (*Vars)(nil)

func NewVars() *Vars {
	return &Vars{}
}

func (Vars) ListVariables() ([]efi.VariableDescriptor, error) {
	return efi.ListVariables(efi.DefaultVarContext)
}

func (Vars) GetVariable(guid efi.GUID, name string) (data []byte, attrs efi.VariableAttributes, err error) {
	return efi.ReadVariable(efi.DefaultVarContext, name, guid)
}

func (Vars) WriteVariable(name string, guid GUID, attrs VariableAttributes, data []byte) error {
	return efi.WriteVariable(efi.DefaultVarContext, name, guid, attrs, data)
}
