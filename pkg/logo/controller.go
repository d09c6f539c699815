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
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/suse/bootlogo/pkg/efi"
	"github.com/suse/bootlogo/pkg/esp"
	"github.com/suse/bootlogo/pkg/sys"
	"github.com/suse/bootlogo/pkg/sys/platform"
)

const DefaultVendor = "Lenovo"

// Info is a snapshot of the logo records as read from the firmware
type Info struct {
	Descriptor    DeviceDescriptor
	DescriptorVar VarID
	// Check is nil when the firmware exposes no device check
	Check    *DeviceCheck
	CheckVar VarID
}

// Version returns the device check protocol version, 0 without device check
func (i Info) Version() uint32 {
	if i.Check == nil {
		return 0
	}
	return i.Check.Version
}

type Controller struct {
	s       *sys.System
	store   *Store
	stager  *esp.Stager
	vendor  string
	records Records
	scan    bool
}

type Option func(c *Controller)

// WithVendor sets the vendor directory logos are staged under in the ESP
func WithVendor(vendor string) Option {
	return func(c *Controller) {
		if vendor != "" {
			c.vendor = vendor
		}
	}
}

func WithRecords(records Records) Option {
	return func(c *Controller) {
		c.records = records
	}
}

// WithNameScan enables looking records up by name prefix when they are not
// found under their canonical name
func WithNameScan(scan bool) Option {
	return func(c *Controller) {
		c.scan = scan
	}
}

func NewController(s *sys.System, vars efi.Variables, caps platform.Capabilities, opts ...Option) *Controller {
	c := &Controller{
		s:       s,
		stager:  esp.NewStager(s, caps),
		vendor:  DefaultVendor,
		records: DefaultRecords(),
		scan:    runtime.GOOS == platform.Linux,
	}
	for _, o := range opts {
		o(c)
	}
	c.store = NewStore(s.Logger(), vars, caps, c.records, c.scan)
	return c
}

// LogoDir is the ESP directory holding the staged logo
func (c Controller) LogoDir() string {
	return path.Join("/EFI", c.vendor, "Logo")
}

// LogoPath is the ESP path a logo with the given extension is staged at
func (c Controller) LogoPath(info *Info, ext string) string {
	name := fmt.Sprintf("mylogo_%dx%d.%s", info.Descriptor.Width, info.Descriptor.Height, ext)
	return path.Join(c.LogoDir(), name)
}

// GetInfo reads both records from the firmware
func (c Controller) GetInfo() (*Info, error) {
	desc, descVar, err := c.store.ReadDescriptor()
	if err != nil {
		return nil, err
	}
	check, checkVar, err := c.store.ReadCheck()
	if err != nil {
		return nil, err
	}
	return &Info{Descriptor: desc, DescriptorVar: descVar, Check: check, CheckVar: checkVar}, nil
}

// SetLogo stages the image at src on the ESP, enables the custom logo and
// records its checksum. Steps already done are not reverted on failure,
// the returned snapshot is always read back from the firmware and is nil
// only if that read fails.
func (c Controller) SetLogo(src string) (*Info, error) {
	info, err := c.GetInfo()
	if err != nil {
		return nil, err
	}
	return c.reread(c.setLogo(info, src))
}

func (c Controller) setLogo(info *Info, src string) error {
	logger := c.s.Logger()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(src), "."))
	if ext == "" {
		return fmt.Errorf("%w: %s has no file extension", ErrStagingFailed, src)
	}
	if !info.Descriptor.Supports(ext) {
		return fmt.Errorf("%w: format %s is not supported, expected one of %v", ErrStagingFailed, ext, info.Descriptor.Formats())
	}
	if info.Check != nil && !info.Check.Supported() {
		return fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, info.Check.Version)
	}

	dst := c.LogoPath(info, ext)
	if err := c.stager.Stage(src, dst); err != nil {
		logger.Error("Staging logo failed: %v", err)
		return fmt.Errorf("%w: %w", ErrStagingFailed, err)
	}

	desc := info.Descriptor
	desc.Enable = 1
	if err := c.store.Write(info.DescriptorVar, desc.Encode()); err != nil {
		logger.Error("Enabling custom logo failed: %v", err)
		return err
	}

	if info.Check == nil {
		logger.Warn("Device check %s not available, logo checksum skipped", info.CheckVar)
		return nil
	}

	sum, err := Checksum(c.s.FS(), src, info.Check.Version)
	if err != nil {
		logger.Error("Computing logo checksum failed: %v", err)
		return err
	}
	check := *info.Check
	if err = check.SetChecksum(sum); err != nil {
		return fmt.Errorf("%w: %w", ErrChecksumFailed, err)
	}
	if err = c.store.Write(info.CheckVar, check.Encode()); err != nil {
		logger.Error("Writing logo checksum failed: %v", err)
		return err
	}
	logger.Info("Custom logo set to %s", dst)
	return nil
}

// RestoreLogo removes the staged logo, disables the custom logo and clears
// the recorded checksum. Every step is attempted even if earlier ones fail.
func (c Controller) RestoreLogo() (*Info, error) {
	logger := c.s.Logger()
	var errs error

	if err := c.stager.Delete(c.LogoDir()); err != nil {
		logger.Error("Deleting staged logo failed: %v", err)
		errs = errors.Join(errs, fmt.Errorf("%w: %w", ErrStagingFailed, err))
	}

	info, err := c.GetInfo()
	if err != nil {
		return nil, errors.Join(errs, err)
	}

	if info.Descriptor.Enable != 0 {
		desc := info.Descriptor
		desc.Enable = 0
		if err = c.store.Write(info.DescriptorVar, desc.Encode()); err != nil {
			logger.Error("Disabling custom logo failed: %v", err)
			errs = errors.Join(errs, err)
		}
	}

	if info.Check != nil && !info.Check.ChecksumCleared() {
		check := *info.Check
		check.ClearChecksum()
		if err = c.store.Write(info.CheckVar, check.Encode()); err != nil {
			logger.Error("Clearing logo checksum failed: %v", err)
			errs = errors.Join(errs, err)
		}
	}

	if errs == nil {
		logger.Info("Default logo restored")
	}
	return c.reread(errs)
}

// reread returns a fresh snapshot along with the error of the mutation
func (c Controller) reread(mutationErr error) (*Info, error) {
	info, err := c.GetInfo()
	if err != nil {
		return nil, errors.Join(mutationErr, err)
	}
	return info, mutationErr
}
