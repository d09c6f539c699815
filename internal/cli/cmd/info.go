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
	OutputText = "text"
	OutputYAML = "yaml"
)

type InfoFlags struct {
	Output string
}

var InfoArgs InfoFlags

func NewInfoCommand(appName string, action func(*cli.Context) error) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show the boot logo settings of the firmware",
		UsageText: fmt.Sprintf("%s info [OPTIONS]", appName),
		Before: func(*cli.Context) error {
			switch InfoArgs.Output {
			case OutputText, OutputYAML:
				return nil
			default:
				return cli.Exit(fmt.Sprintf("Error: unknown output format '%s'.", InfoArgs.Output), 1)
			}
		},
		Action: action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output format, text or yaml",
				Value:       OutputText,
				Destination: &InfoArgs.Output,
			},
		},
	}
}
