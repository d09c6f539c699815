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

package sys

import (
	"context"
	"os/exec"

	"github.com/suse/bootlogo/pkg/log"
	"github.com/suse/bootlogo/pkg/sys/mounter"
	"github.com/suse/bootlogo/pkg/sys/runner"
	"github.com/suse/bootlogo/pkg/sys/vfs"
)

type FS = vfs.FS

type Mounter = mounter.Interface

type Runner interface {
	Run(cmd string, args ...string) ([]byte, error)
	RunContext(cxt context.Context, cmd string, args ...string) ([]byte, error)
}

type System struct {
	logger  log.Logger
	fs      FS
	mounter Mounter
	runner  Runner
}

type SystemOpts func(a *System) error

func WithFS(fs FS) SystemOpts {
	return func(s *System) error {
		s.fs = fs
		return nil
	}
}

func WithLogger(logger log.Logger) SystemOpts {
	return func(s *System) error {
		s.logger = logger
		return nil
	}
}

func WithMounter(mounter Mounter) SystemOpts {
	return func(r *System) error {
		r.mounter = mounter
		return nil
	}
}

func WithRunner(runner Runner) SystemOpts {
	return func(r *System) error {
		r.runner = runner
		return nil
	}
}

func NewSystem(opts ...SystemOpts) (*System, error) {
	logger := log.New(log.WithTextFormatter())
	sysObj := &System{
		fs:     vfs.New(),
		logger: logger,
	}

	for _, o := range opts {
		err := o(sysObj)
		if err != nil {
			return nil, err
		}
	}

	// Defer the runner creation in case the caller set a custom logger
	if sysObj.runner == nil {
		sysObj.runner = runner.NewRunner(runner.WithLogger(sysObj.logger))
	}

	// The native mounter depends on the runner on some platforms
	if sysObj.mounter == nil {
		sysObj.mounter = defaultMounter(sysObj.runner)
	}
	return sysObj, nil
}

func (s System) FS() FS {
	return s.fs
}

func (s System) Mounter() Mounter {
	return s.mounter
}

func (s System) Runner() Runner {
	return s.runner
}

func (s System) Logger() log.Logger {
	return s.logger
}

// CommandExists
func CommandExists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
