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

package ghw

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jaypipes/ghw"
	ghwblock "github.com/jaypipes/ghw/pkg/block"
	ghwUtil "github.com/jaypipes/ghw/pkg/util"

	"github.com/suse/bootlogo/pkg/block"
	"github.com/suse/bootlogo/pkg/sys"
	"github.com/suse/bootlogo/pkg/sys/mounter"
)

// blockInfo returns the block devices of the host, replaced in tests
var blockInfo = func() (*ghwblock.Info, error) {
	return ghwblock.New(ghw.WithDisableTools(), ghw.WithDisableWarnings())
}

type ghwDevice struct {
	mounter mounter.Interface
}

func NewGhwDevice(s *sys.System) *ghwDevice { //nolint:revive
	return &ghwDevice{mounter: s.Mounter()}
}

var _ block.Device = (*ghwDevice)(nil)

// ghwPartitionToInternalPartition transforms a block.Partition from ghw lib to our types.Partition type
func ghwPartitionToInternalPartition(m mounter.Interface, partition *ghwblock.Partition) *block.Partition {
	path := filepath.Join("/dev", partition.Name)
	var mnts []string
	if partition.MountPoint != "" {
		mnts = append(mnts, partition.MountPoint)
	}
	// Mount listing failures only lose the extra mount points
	if extra, err := m.GetMountPoints(path); err == nil {
		for _, mp := range extra {
			if mp.Path != partition.MountPoint {
				mnts = append(mnts, mp.Path)
			}
		}
	}
	var disk string
	if partition.Disk != nil {
		disk = filepath.Join("/dev", partition.Disk.Name)
	}
	fsType := partition.Type
	if fsType == ghwUtil.UNKNOWN {
		fsType = ""
	}
	return &block.Partition{
		Label:       partition.FilesystemLabel,
		Size:        uint(partition.SizeBytes / (1024 * 1024)), // Converts B to MB
		Name:        partition.Label,
		FileSystem:  fsType,
		UUID:        partition.UUID,
		MountPoints: mnts,
		Path:        path,
		Disk:        disk,
	}
}

func (b ghwDevice) partitions(match func(*ghwblock.Disk) bool) (block.PartitionList, error) {
	blockDevices, err := blockInfo()
	if err != nil {
		return nil, err
	}
	var parts block.PartitionList
	for _, d := range blockDevices.Disks {
		if !match(d) {
			continue
		}
		for _, part := range d.Partitions {
			parts = append(parts, ghwPartitionToInternalPartition(b.mounter, part))
		}
	}
	return parts, nil
}

// GetAllPartitions returns all partitions in the system for all disks
func (b ghwDevice) GetAllPartitions() (block.PartitionList, error) {
	return b.partitions(func(*ghwblock.Disk) bool { return true })
}

// GetDevicePartitions gets the partitions for the given disk
func (b ghwDevice) GetDevicePartitions(device string) (block.PartitionList, error) {
	// We want to have the device always prefixed with a /dev
	if !strings.HasPrefix(device, "/dev") {
		device = filepath.Join("/dev", device)
	}
	return b.partitions(func(d *ghwblock.Disk) bool {
		return filepath.Join("/dev", d.Name) == device
	})
}

// GetPartitionFS gets the FS of a partition given
func (b ghwDevice) GetPartitionFS(partition string) (string, error) {
	// We want to have the device always prefixed with a /dev
	if !strings.HasPrefix(partition, "/dev") {
		partition = filepath.Join("/dev", partition)
	}
	parts, err := b.GetAllPartitions()
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		if p.Path == partition {
			if p.FileSystem == "" {
				return "", fmt.Errorf("could not find filesystem for partition %s", partition)
			}
			return p.FileSystem, nil
		}
	}
	return "", fmt.Errorf("could not find partition %s", partition)
}
