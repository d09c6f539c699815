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

package block

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/suse/bootlogo/pkg/sys"
)

const Ghw = "ghw"
const Lsblk = "lsblk"

// ESPPartType is the GPT partition type GUID of an EFI System Partition
const ESPPartType = "c12a7328-f81f-11d2-ba4b-00a0c93ec93b"

const espFS = "vfat"

var ErrNoESP = errors.New("no EFI system partition found")

type Device interface {
	GetAllPartitions() (PartitionList, error)
	GetDevicePartitions(device string) (PartitionList, error)
	GetPartitionFS(partition string) (string, error)
}

// Partition struct represents a partition with its commonly configurable values, size in MiB
type Partition struct {
	Name        string
	Label       string
	Size        uint
	FileSystem  string
	UUID        string
	PartType    string
	MountPoints []string
	Path        string
	Disk        string
}

// IsESP reports whether the partition type GUID is the EFI System Partition one
func (p Partition) IsESP() bool {
	if p.PartType == "" {
		return false
	}
	id, err := uuid.Parse(p.PartType)
	if err != nil {
		return false
	}
	return id.String() == ESPPartType
}

// looksLikeESP matches FAT partitions named or labelled after EFI, used
// where the partition type is not reported
func (p Partition) looksLikeESP() bool {
	if !strings.EqualFold(p.FileSystem, espFS) {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), "efi") || strings.Contains(strings.ToLower(p.Label), "efi")
}

type PartitionList []*Partition

// GetByName gets a partitions by its name from the PartitionList
func (pl PartitionList) GetByName(name string) *Partition {
	var part *Partition

	for _, p := range pl {
		if p.Name == name {
			part = p
			// Prioritize mounted partitions if there are multiple matches
			if len(part.MountPoints) > 0 {
				return part
			}
		}
	}
	return part
}

// GetByLabel gets a partition by its label from the PartitionList
func (pl PartitionList) GetByLabel(label string) *Partition {
	var part *Partition

	for _, p := range pl {
		if p.Label == label {
			part = p
			// Prioritize mounted partitions if there are multiple matches
			if len(part.MountPoints) > 0 {
				return part
			}
		}
	}
	return part
}

// GetESP returns the EFI System Partition of the list, nil if none.
// Partitions with the ESP type GUID win over FAT partitions that only look
// like one by name or label. Within each group the list order is kept.
func (pl PartitionList) GetESP() *Partition {
	for _, p := range pl {
		if p.IsESP() {
			return p
		}
	}
	for _, p := range pl {
		if p.looksLikeESP() {
			return p
		}
	}
	return nil
}

// FindESP looks for the EFI System Partition querying each device provider
// in order. Each round waits for udev to settle first, rounds are retried
// up to the given attempts with the given interval in between.
func FindESP(s *sys.System, attempts int, interval time.Duration, devices ...Device) (*Partition, error) {
	if attempts < 1 {
		attempts = 1
	}
	var esp *Partition
	find := func() error {
		_, _ = s.Runner().Run("udevadm", "settle")
		var errs error
		for _, d := range devices {
			parts, err := d.GetAllPartitions()
			if err != nil {
				s.Logger().Debug("listing partitions failed: %v", err)
				errs = errors.Join(errs, err)
				continue
			}
			if esp = parts.GetESP(); esp != nil {
				return nil
			}
		}
		if errs != nil {
			return fmt.Errorf("%w: %w", ErrNoESP, errs)
		}
		return ErrNoESP
	}
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(attempts-1))
	if err := backoff.Retry(find, b); err != nil {
		return nil, err
	}
	return esp, nil
}
