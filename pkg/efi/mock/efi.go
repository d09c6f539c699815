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
	"github.com/suse/bootlogo/pkg/efi"
)

type mockEFIVariable struct {
	data  []byte
	attrs efi.VariableAttributes
}

// EFIVariables implements an in-memory variable store. Listing follows
// insertion order.
type EFIVariables struct {
	order     []efi.VariableDescriptor
	store     map[efi.VariableDescriptor]mockEFIVariable
	readErrs  map[string]error
	writeErrs map[string]error
	listErr   error
	Writes    int
}

var _ efi.Variables = (*EFIVariables)(nil)

func NewMockEFIVariables() *EFIVariables {
	return &EFIVariables{
		store:     make(map[efi.VariableDescriptor]mockEFIVariable),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// Set stores a variable without counting it as a write
func (m *EFIVariables) Set(name string, guid efi.GUID, data []byte) *EFIVariables {
	m.put(efi.VariableDescriptor{Name: name, GUID: guid}, mockEFIVariable{append([]byte(nil), data...), efi.DefaultAttributes})
	return m
}

// WithReadError makes every read of the given variable name fail
func (m *EFIVariables) WithReadError(name string, err error) *EFIVariables {
	m.readErrs[name] = err
	return m
}

// WithWriteError makes every write of the given variable name fail
func (m *EFIVariables) WithWriteError(name string, err error) *EFIVariables {
	m.writeErrs[name] = err
	return m
}

func (m *EFIVariables) WithListError(err error) *EFIVariables {
	m.listErr = err
	return m
}

// Data returns a copy of the stored payload, nil if missing
func (m *EFIVariables) Data(name string, guid efi.GUID) []byte {
	v, ok := m.store[efi.VariableDescriptor{Name: name, GUID: guid}]
	if !ok {
		return nil
	}
	return append([]byte(nil), v.data...)
}

// ListVariables implements EFIVariables
func (m *EFIVariables) ListVariables() ([]efi.VariableDescriptor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]efi.VariableDescriptor(nil), m.order...), nil
}

// GetVariable implements EFIVariables
func (m *EFIVariables) GetVariable(guid efi.GUID, name string) ([]byte, efi.VariableAttributes, error) {
	if err := m.readErrs[name]; err != nil {
		return nil, 0, err
	}
	out, ok := m.store[efi.VariableDescriptor{Name: name, GUID: guid}]
	if !ok {
		return nil, 0, efi.ErrVarNotExist
	}
	return append([]byte(nil), out.data...), out.attrs, nil
}

// WriteVariable implements EFIVariables
func (m *EFIVariables) WriteVariable(name string, guid efi.GUID, attrs efi.VariableAttributes, data []byte) error {
	if err := m.writeErrs[name]; err != nil {
		return err
	}
	m.Writes++
	desc := efi.VariableDescriptor{Name: name, GUID: guid}
	if len(data) == 0 {
		delete(m.store, desc)
		for i, d := range m.order {
			if d == desc {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		return nil
	}
	m.put(desc, mockEFIVariable{append([]byte(nil), data...), attrs})
	return nil
}

func (m *EFIVariables) put(desc efi.VariableDescriptor, v mockEFIVariable) {
	if _, ok := m.store[desc]; !ok {
		m.order = append(m.order, desc)
	}
	m.store[desc] = v
}
