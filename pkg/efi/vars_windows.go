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
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	systemEnvironmentPrivilege = "SeSystemEnvironmentPrivilege"
	initialBufferSize          = 1024
	maxBufferSize              = 64 * 1024
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetFirmwareEnvironmentVariableExW = modkernel32.NewProc("GetFirmwareEnvironmentVariableExW")
	procSetFirmwareEnvironmentVariableExW = modkernel32.NewProc("SetFirmwareEnvironmentVariableExW")
)

// Vars accesses the firmware variables through the kernel32 firmware
// environment API. The calling token needs SeSystemEnvironmentPrivilege,
// which is enabled on first use.
type Vars struct {
	once    sync.Once
	privErr error
}

var _ Variables = (*Vars)(nil)

func NewVars() *Vars {
	return &Vars{}
}

// ListVariables is not offered by the firmware environment API
func (v *Vars) ListVariables() ([]VariableDescriptor, error) {
	return nil, ErrVarsUnavailable
}

func (v *Vars) GetVariable(guid GUID, name string) ([]byte, VariableAttributes, error) {
	if err := v.enablePrivilege(); err != nil {
		return nil, 0, err
	}
	namePtr, guidPtr, err := varPointers(name, guid)
	if err != nil {
		return nil, 0, err
	}

	for size := initialBufferSize; size <= maxBufferSize; size *= 2 {
		buf := make([]byte, size)
		var attrs uint32
		n, _, callErr := procGetFirmwareEnvironmentVariableExW.Call(
			uintptr(unsafe.Pointer(namePtr)),
			uintptr(unsafe.Pointer(guidPtr)),
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(size),
			uintptr(unsafe.Pointer(&attrs)),
		)
		if n != 0 {
			return buf[:n], VariableAttributes(attrs), nil
		}
		if errors.Is(callErr, windows.ERROR_INSUFFICIENT_BUFFER) {
			continue
		}
		return nil, 0, mapError(callErr)
	}
	return nil, 0, fmt.Errorf("variable %s is larger than %d bytes", VarName(name, guid), maxBufferSize)
}

func (v *Vars) WriteVariable(name string, guid GUID, attrs VariableAttributes, data []byte) error {
	if err := v.enablePrivilege(); err != nil {
		return err
	}
	namePtr, guidPtr, err := varPointers(name, guid)
	if err != nil {
		return err
	}

	var dataPtr uintptr
	if len(data) > 0 {
		dataPtr = uintptr(unsafe.Pointer(&data[0]))
	}
	ok, _, callErr := procSetFirmwareEnvironmentVariableExW.Call(
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(unsafe.Pointer(guidPtr)),
		dataPtr,
		uintptr(len(data)),
		uintptr(attrs),
	)
	if ok == 0 {
		return mapError(callErr)
	}
	return nil
}

func (v *Vars) enablePrivilege() error {
	v.once.Do(func() {
		var token windows.Token
		err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token)
		if err != nil {
			v.privErr = fmt.Errorf("opening process token: %w", err)
			return
		}
		defer token.Close()

		var luid windows.LUID
		err = windows.LookupPrivilegeValue(nil, windows.StringToUTF16Ptr(systemEnvironmentPrivilege), &luid)
		if err != nil {
			v.privErr = fmt.Errorf("looking up %s: %w", systemEnvironmentPrivilege, err)
			return
		}
		privileges := windows.Tokenprivileges{
			PrivilegeCount: 1,
			Privileges: [1]windows.LUIDAndAttributes{
				{Luid: luid, Attributes: windows.SE_PRIVILEGE_ENABLED},
			},
		}
		err = windows.AdjustTokenPrivileges(token, false, &privileges, 0, nil, nil)
		if err != nil {
			v.privErr = fmt.Errorf("%w: enabling %s: %w", ErrVarPermission, systemEnvironmentPrivilege, err)
		}
	})
	return v.privErr
}

func varPointers(name string, guid GUID) (*uint16, *uint16, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, nil, err
	}
	guidPtr, err := windows.UTF16PtrFromString("{" + guid.String() + "}")
	if err != nil {
		return nil, nil, err
	}
	return namePtr, guidPtr, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, windows.ERROR_ENVVAR_NOT_FOUND):
		return ErrVarNotExist
	case errors.Is(err, windows.ERROR_INVALID_FUNCTION):
		return ErrVarsUnavailable
	case errors.Is(err, windows.ERROR_PRIVILEGE_NOT_HELD), errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return ErrVarPermission
	default:
		return err
	}
}
