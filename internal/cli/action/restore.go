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
	"github.com/urfave/cli/v2"

	"github.com/suse/bootlogo/internal/cli/cmd"
)

func RestoreLogo(c *cli.Context) error {
	env, err := setupEnvironment(c)
	if err != nil {
		return err
	}
	if err = env.requirePrivileges("restoring the boot logo"); err != nil {
		return err
	}
	ctrl, err := env.controller()
	if err != nil {
		return err
	}
	logger := env.system.Logger()

	if err = env.caps.SetBootSplashVisible(true); err != nil {
		logger.Warn("Restoring boot splash visibility failed: %v", err)
	}

	info, err := ctrl.RestoreLogo()
	if err != nil {
		logger.Error("Restoring the boot logo failed")
	}
	if info != nil {
		if pErr := printInfo(c.App.Writer, env, info, cmd.OutputText); pErr != nil && err == nil {
			err = pErr
		}
	}
	return err
}
