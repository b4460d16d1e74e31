// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var queryCommand = &cli.Command{
	Name:        "query",
	Usage:       "Query dictionaries",
	ArgsUsage:   "QUERY",
	Description: "Search the headwords and synonyms of all dictionaries in the data directories.",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: expected a single query", ErrFlagParse)
		}
		query := c.Args().First()

		dicts, errs := openStardicts(c.StringSlice("data-dir"), newLogger(c))
		for _, err := range errs {
			fmt.Fprintln(c.App.ErrWriter, err)
		}
		defer func() {
			for _, d := range dicts {
				_ = d.Close()
			}
		}()

		for _, d := range dicts {
			entries, err := d.Search(query)
			if err != nil {
				errs = append(errs, err)
				fmt.Fprintln(c.App.ErrWriter, err)
				continue
			}
			if len(entries) == 0 {
				continue
			}

			fmt.Fprintln(c.App.Writer, d.Bookname())
			fmt.Fprintln(c.App.Writer)
			for _, e := range entries {
				fmt.Fprintln(c.App.Writer, e)
			}
		}

		if len(errs) > 0 {
			return fmt.Errorf("%w: %w", ErrOpen, errors.Join(errs...))
		}
		return nil
	},
}
