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

type (
	VariableDescriptor = efi.VariableDescriptor
	VariableAttributes = efi.VariableAttributes
	GUID               = efi.GUID
)

var (
	ErrVarsUnavailable = efi.ErrVarsUnavailable
	ErrVarNotExist     = efi.ErrVarNotExist
	ErrVarPermission   = efi.ErrVarPermission

	AttributeNonVolatile       = efi.AttributeNonVolatile
	AttributeBootserviceAccess = efi.AttributeBootserviceAccess
	AttributeRuntimeAccess     = efi.AttributeRuntimeAccess

	DecodeGUIDString = efi.DecodeGUIDString
)

// DefaultAttributes is the attribute set used to write vendor configuration records:
// non volatile, boot service and runtime accessible.
const DefaultAttributes = efi.AttributeNonVolatile | efi.AttributeBootserviceAccess | efi.AttributeRuntimeAccess

type Variables interface {
	ListVariables() ([]VariableDescriptor, error)
	GetVariable(guid GUID, name string) (data []byte, attrs VariableAttributes, err error)
	WriteVariable(name string, guid GUID, attrs VariableAttributes, data []byte) error
}

// VarName returns the canonical key of a variable, as exposed by efivarfs
func VarName(name string, guid GUID) string {
	return name + "-" + guid.String()
}
