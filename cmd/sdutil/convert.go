// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stardict/v2"
	"github.com/ianlewis/go-stardict/v2/glossary"
)

// infoKeys are the .ifo values copied to converted dictionaries.
var infoKeys = []string{
	"bookname",
	"author",
	"email",
	"website",
	"date",
	"lang",
	"description",
}

var convertCommand = &cli.Command{
	Name:      "convert",
	Usage:     "Convert a dictionary",
	ArgsUsage: "SRC DST",
	Description: "Read the dictionary SRC (an .ifo file or its directory) and " +
		"write it to DST with the given options.",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "large-file",
			Usage: "use 64-bit offsets in the index",
		},
		&cli.BoolFlag{
			Name:  "merge-syns",
			Usage: "write synonyms to the index instead of a .syn file",
		},
		&cli.BoolFlag{
			Name:  "sqlite",
			Usage: "sort the index on disk",
		},
		&cli.BoolFlag{
			Name:  "dictzip",
			Usage: "compress the .dict and .syn files",
		},
		&cli.StringFlag{
			Name:  "sametypesequence",
			Usage: "article format, one of h, m, or x; detected if not set",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			return fmt.Errorf("%w: expected SRC and DST", ErrFlagParse)
		}
		logger := newLogger(c)

		src, err := stardict.Open(c.Args().Get(0), &stardict.Options{
			Logger: logger,
		})
		if err != nil {
			return err
		}
		defer src.Close()

		info := &glossary.Info{}
		for _, key := range infoKeys {
			if v := src.Value(key); v != "" {
				info.Set(key, v)
			}
		}

		dst, err := stardict.Create(c.Args().Get(1), &stardict.WriterOptions{
			LargeFile:              c.Bool("large-file"),
			SameTypeSequence:       c.String("sametypesequence"),
			DetectSameTypeSequence: !c.IsSet("sametypesequence"),
			MergeSyns:              c.Bool("merge-syns"),
			SQLite:                 c.Bool("sqlite"),
			DictZip:                c.Bool("dictzip"),
			Info:                   info,
			Logger:                 logger,
		})
		if err != nil {
			return err
		}

		s, err := src.Entries()
		if err != nil {
			return err
		}
		defer s.Close()

		n := 0
		for s.Scan() {
			if err := dst.Write(s.Entry()); err != nil {
				return err
			}
			n++
		}
		if err := s.Err(); err != nil {
			return err
		}
		if err := dst.Finish(); err != nil {
			return err
		}

		logger.Info("converted dictionary",
			"src", src.Path(),
			"dst", c.Args().Get(1),
			"entries", n,
		)
		return nil
	},
}
