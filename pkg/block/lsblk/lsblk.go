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

package lsblk

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/suse/bootlogo/pkg/block"
	"github.com/suse/bootlogo/pkg/sys"
)

const columns = "LABEL,PARTLABEL,UUID,SIZE,FSTYPE,MOUNTPOINTS,PATH,PKNAME,TYPE,PARTTYPE"

type lsDevice struct {
	runner sys.Runner
}

var _ block.Device = (*lsDevice)(nil)

func NewLsDevice(s *sys.System) *lsDevice { //nolint:revive
	return &lsDevice{runner: s.Runner()}
}

type blockDevice struct {
	Label       string   `json:"label,omitempty"`
	PartLabel   string   `json:"partlabel,omitempty"`
	UUID        string   `json:"uuid,omitempty"`
	Size        uint64   `json:"size,omitempty"`
	FSType      string   `json:"fstype,omitempty"`
	MountPoints []string `json:"mountpoints,omitempty"`
	Path        string   `json:"path,omitempty"`
	PkName      string   `json:"pkname,omitempty"`
	Type        string   `json:"type,omitempty"`
	PartType    string   `json:"parttype,omitempty"`
}

type lsblkOutput struct {
	BlockDevices []blockDevice `json:"blockdevices"`
}

func (b lsDevice) list(device string) (block.PartitionList, error) {
	args := []string{"-p", "-b", "-n", "-J", "-l", "--output", columns}
	if device != "" {
		args = append(args, device)
	}
	out, err := b.runner.Run("lsblk", args...)
	if err != nil {
		return nil, fmt.Errorf("running lsblk: %w", err)
	}

	var devices lsblkOutput
	if err = json.Unmarshal(out, &devices); err != nil {
		return nil, fmt.Errorf("parsing lsblk output: %w", err)
	}

	var parts block.PartitionList
	for _, d := range devices.BlockDevices {
		if d.Type != "part" {
			continue
		}
		var mnts []string
		for _, m := range d.MountPoints {
			if m != "" {
				mnts = append(mnts, m)
			}
		}
		parts = append(parts, &block.Partition{
			Name:        d.PartLabel,
			Label:       d.Label,
			Size:        uint(d.Size / (1024 * 1024)),
			FileSystem:  d.FSType,
			UUID:        d.UUID,
			PartType:    strings.ToLower(d.PartType),
			MountPoints: mnts,
			Path:        d.Path,
			Disk:        d.PkName,
		})
	}
	return parts, nil
}

// GetAllPartitions returns all partitions in the system for all disks
func (b lsDevice) GetAllPartitions() (block.PartitionList, error) {
	return b.list("")
}

// GetDevicePartitions gets the partitions for the given disk
func (b lsDevice) GetDevicePartitions(device string) (block.PartitionList, error) {
	if !strings.HasPrefix(device, "/dev") {
		device = filepath.Join("/dev", device)
	}
	return b.list(device)
}

// GetPartitionFS gets the FS of a partition given
func (b lsDevice) GetPartitionFS(partition string) (string, error) {
	if !strings.HasPrefix(partition, "/dev") {
		partition = filepath.Join("/dev", partition)
	}
	parts, err := b.list(partition)
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
