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

import (
	"errors"
	"fmt"
	"strings"

	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/log"
	"github.com/suse/bootlogo/pkg/sys/platform"
)

const (
	DescriptorName = "LBLDESP"
	CheckName      = "LBLDVC"
)

var (
	DescriptorGUID = mustGUID("871455D0-5576-4FB8-9865-AF0824463B9E")
	CheckGUID      = mustGUID("871455D1-5576-4FB8-9865-AF0824463C9F")
)

func mustGUID(s string) efi.GUID {
	guid, err := efi.DecodeGUIDString(s)
	if err != nil {
		panic(err)
	}
	return guid
}

// VarID identifies a firmware variable
type VarID struct {
	Name string
	GUID efi.GUID
}

func (v VarID) String() string {
	return efi.VarName(v.Name, v.GUID)
}

// Records names the device descriptor and device check variables
type Records struct {
	Descriptor VarID
	Check      VarID
}

func DefaultRecords() Records {
	return Records{
		Descriptor: VarID{Name: DescriptorName, GUID: DescriptorGUID},
		Check:      VarID{Name: CheckName, GUID: CheckGUID},
	}
}

// Store reads and writes the logo records in the firmware variable store
type Store struct {
	vars    efi.Variables
	caps    platform.Capabilities
	logger  log.Logger
	records Records
	scan    bool
}

// NewStore returns a Store for the given records. With scan set, records
// missing under their canonical name are looked up by name prefix among
// all the variables.
func NewStore(logger log.Logger, vars efi.Variables, caps platform.Capabilities, records Records, scan bool) *Store {
	return &Store{vars: vars, caps: caps, logger: logger, records: records, scan: scan}
}

// ReadDescriptor reads and decodes the device descriptor and returns the
// variable it was found at
func (st *Store) ReadDescriptor() (DeviceDescriptor, VarID, error) {
	data, id, err := st.read(st.records.Descriptor)
	if err != nil {
		return DeviceDescriptor{}, id, err
	}
	d, err := DecodeDescriptor(data)
	if err != nil {
		return DeviceDescriptor{}, id, fmt.Errorf("%s: %w", id, err)
	}
	return d, id, nil
}

// ReadCheck reads and decodes the device check. A check missing from the
// firmware is not an error, nil is returned instead.
func (st *Store) ReadCheck() (*DeviceCheck, VarID, error) {
	data, id, err := st.read(st.records.Check)
	if errors.Is(err, efi.ErrVarNotExist) {
		st.logger.Debug("device check %s not found", id)
		return nil, id, nil
	} else if err != nil {
		return nil, id, err
	}
	c, err := DecodeCheck(data)
	if err != nil {
		return nil, id, fmt.Errorf("%s: %w", id, err)
	}
	return &c, id, nil
}

func (st *Store) read(id VarID) ([]byte, VarID, error) {
	data, _, err := st.vars.GetVariable(id.GUID, id.Name)
	if errors.Is(err, efi.ErrVarNotExist) && st.scan {
		if found, ok := st.lookup(id.Name); ok {
			st.logger.Info("Variable %s not found, using %s", id, found)
			id = found
			data, _, err = st.vars.GetVariable(id.GUID, id.Name)
		}
	}
	if err != nil {
		return nil, id, fmt.Errorf("%w %s: %w", ErrVariableRead, id, err)
	}
	return data, id, nil
}

// lookup returns the first variable, in listing order, whose name starts
// with prefix
func (st *Store) lookup(prefix string) (VarID, bool) {
	descs, err := st.vars.ListVariables()
	if err != nil {
		st.logger.Debug("listing firmware variables failed: %v", err)
		return VarID{}, false
	}
	for _, d := range descs {
		if strings.HasPrefix(d.Name, prefix) {
			return VarID{Name: d.Name, GUID: d.GUID}, true
		}
	}
	return VarID{}, false
}

// Write stores data at the given variable. The variable is made mutable
// for the write and immutable again afterwards, toggle failures are only
// logged.
func (st *Store) Write(id VarID, data []byte) error {
	if err := st.caps.ToggleImmutable(id.Name, id.GUID, false); err != nil {
		st.logger.Warn("%v", fmt.Errorf("%w %s: %w", ErrImmutability, id, err))
	}
	err := st.vars.WriteVariable(id.Name, id.GUID, efi.DefaultAttributes, data)
	if rErr := st.caps.ToggleImmutable(id.Name, id.GUID, true); rErr != nil {
		st.logger.Warn("Failed to restore immutable flag: %v", fmt.Errorf("%w %s: %w", ErrImmutability, id, rErr))
	}
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrVariableWrite, id, err)
	}
	st.logger.Debug("wrote %d bytes to %s", len(data), id)
	return nil
}
