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

const (
	SplashShow = "show"
	SplashHide = "hide"
)

type SplashFlags struct {
	// State is empty when only querying
	State string
}

var SplashArgs SplashFlags

func NewSplashCommand(appName string, action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "splash",
		Usage:     "Query or set the OS loading icon visibility",
		UsageText: fmt.Sprintf("%s splash [show|hide]", appName),
		Before: func(ctx *cli.Context) error {
			if ctx.Args().Len() > 1 {
				return cli.Exit("Error: too many arguments.", 1)
			}
			SplashArgs.State = ctx.Args().First()
			switch SplashArgs.State {
			case "", SplashShow, SplashHide:
				return nil
			default:
				return cli.Exit(fmt.Sprintf("Error: unknown splash state '%s', expected show or hide.", SplashArgs.State), 1)
			}
		},
		Action: action,
	}
}
