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

package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

type SetFlags struct {
	Image           string
	ShowLoadingIcon bool
	HideLoadingIcon bool
}

var SetArgs SetFlags

func NewSetCommand(appName string, action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Stage an image on the EFI system partition and use it as boot logo",
		UsageText: fmt.Sprintf("%s set [OPTIONS] IMAGE", appName),
		Before: func(ctx *cli.Context) error {
			if ctx.Args().Len() != 1 {
				return cli.Exit("Error: exactly one image path is required.", 1)
			}
			SetArgs.Image = ctx.Args().First()

			if SetArgs.ShowLoadingIcon && SetArgs.HideLoadingIcon {
				return cli.Exit("Error: Both --show-loading-icon and --hide-loading-icon flags cannot be used together.", 1)
			}
			return nil
		},
		Action: action,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "show-loading-icon",
				Usage:       "Show the OS loading icon below the logo",
				Destination: &SetArgs.ShowLoadingIcon,
			},
			&cli.BoolFlag{
				Name:        "hide-loading-icon",
				Usage:       "Hide the OS loading icon below the logo",
				Destination: &SetArgs.HideLoadingIcon,
			},
		},
	}
}
