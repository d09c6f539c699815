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

package cleanstack

import (
	"errors"
)

const (
	always = iota
	errorOnly
	successOnly
)

// CleanJob is a cleanup callback with its execution condition
type CleanJob struct {
	callback func() error
	kind     int
}

// Run executes the job callback
func (cj CleanJob) Run() error {
	return cj.callback()
}

func (cj CleanJob) runsFor(err error) bool {
	switch cj.kind {
	case errorOnly:
		return err != nil
	case successOnly:
		return err == nil
	default:
		return true
	}
}

// CleanStack is a LIFO stack of cleanup jobs
type CleanStack struct {
	jobs []*CleanJob
}

// NewCleanStack returns a new stack.
func NewCleanStack() *CleanStack {
	return &CleanStack{}
}

// Push adds a new job that always runs on Cleanup
func (clean *CleanStack) Push(callback func() error) {
	clean.push(callback, always)
}

// PushErrorOnly adds a new job that only runs if Cleanup is reached with an error
func (clean *CleanStack) PushErrorOnly(callback func() error) {
	clean.push(callback, errorOnly)
}

// PushSuccessOnly adds a new job that only runs if Cleanup is reached without errors
func (clean *CleanStack) PushSuccessOnly(callback func() error) {
	clean.push(callback, successOnly)
}

func (clean *CleanStack) push(callback func() error, kind int) {
	clean.jobs = append(clean.jobs, &CleanJob{callback: callback, kind: kind})
}

// Pop removes and returns the last pushed job, nil if the stack is empty
func (clean *CleanStack) Pop() *CleanJob {
	l := len(clean.jobs)
	if l == 0 {
		return nil
	}
	job := clean.jobs[l-1]
	clean.jobs = clean.jobs[:l-1]
	return job
}

// Cleanup runs the whole stack in reverse order. Every job is attempted, job
// errors are joined to the given error and an error turns the remaining
// success only jobs off and the error only jobs on.
func (clean *CleanStack) Cleanup(err error) error {
	for job := clean.Pop(); job != nil; job = clean.Pop() {
		if !job.runsFor(err) {
			continue
		}
		if jErr := job.Run(); jErr != nil {
			err = errors.Join(err, jErr)
		}
	}
	return err
}
