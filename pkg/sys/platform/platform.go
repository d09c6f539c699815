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

package platform

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	// Operating systems with firmware variable support
	Linux   = "linux"
	Windows = "windows"

	// Architectures
	ArchAmd64   = "amd64"
	Archx86     = "x86_64"
	ArchArm64   = "arm64"
	ArchAarch64 = "aarch64"
)

// Platform describes the host the tool runs on
type Platform struct {
	OS         string
	Arch       string
	GolangArch string
}

func NewPlatform(os, arch string) (*Platform, error) {
	golangArch, err := archToGolangArch(arch)
	if err != nil {
		return nil, err
	}

	arch, err = golangArchToArch(arch)
	if err != nil {
		return nil, err
	}

	return &Platform{
		OS:         strings.ToLower(os),
		Arch:       arch,
		GolangArch: golangArch,
	}, nil
}

func NewDefaultPlatform() (*Platform, error) {
	return NewPlatform(runtime.GOOS, runtime.GOARCH)
}

// Supported reports whether firmware variables and ESP staging are implemented for the OS
func (p *Platform) Supported() bool {
	return p != nil && (p.OS == Linux || p.OS == Windows)
}

func (p *Platform) String() string {
	if p == nil {
		return ""
	}

	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

var errInvalidArch = fmt.Errorf("invalid arch")

func archToGolangArch(arch string) (string, error) {
	switch strings.ToLower(arch) {
	case ArchAmd64, Archx86:
		return ArchAmd64, nil
	case ArchArm64, ArchAarch64:
		return ArchArm64, nil
	default:
		return "", errInvalidArch
	}
}

func golangArchToArch(arch string) (string, error) {
	switch strings.ToLower(arch) {
	case ArchAmd64, Archx86:
		return Archx86, nil
	case ArchArm64, ArchAarch64:
		return ArchArm64, nil
	default:
		return "", errInvalidArch
	}
}
