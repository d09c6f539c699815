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

package action

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/suse/bootlogo/internal/cli/cmd"
)

func Splash(c *cli.Context) error {
	args := &cmd.SplashArgs

	env, err := setupEnvironment(c)
	if err != nil {
		return err
	}

	if args.State != "" {
		if err = env.requirePrivileges("setting the boot splash"); err != nil {
			return err
		}
		if err = env.caps.SetBootSplashVisible(args.State == cmd.SplashShow); err != nil {
			return err
		}
	}

	visible, err := env.caps.BootSplashVisible()
	if err != nil {
		return err
	}
	state := "visible"
	if !visible {
		state = "hidden"
	}
	_, err = fmt.Fprintf(c.App.Writer, "Boot splash: %s\n", state)
	return err
}
