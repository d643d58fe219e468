// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "stable-match",
		Usage: "Utility for computing and checking stable assignments",
		Commands: []*cli.Command{
			matchCmd,
			verifyCmd,
		},
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var matchCmd = &cli.Command{
	Name:    "match",
	Usage:   "Compute the suitor-optimal stable assignment",
	Aliases: []string{"m"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "instance",
			Required: true,
			Usage:    "specify the input instance (.json or .yaml)",
		},
		&cli.StringFlag{
			Name:     "output",
			Required: false,
			Usage:    "specify the output assignment (.json or .yaml), stdout if empty",
		},
		&cli.IntFlag{
			Name:     "workers",
			Required: false,
			Value:    1,
			Usage:    "specify the reject phase concurrency (>=1)",
		},
		&cli.BoolFlag{
			Name:  "verify",
			Usage: "verify the assignment before writing it",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log every proposal round",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			instanceFile = ctx.String("instance")
			outputFile   = ctx.String("output")
			workers      = ctx.Int("workers")
			verify       = ctx.Bool("verify")
			verbose      = ctx.Bool("verbose")
		)
		if workers < 1 {
			return errors.New("invalid workers")
		}

		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return doMatch(ctx.Context, logger, instanceFile, outputFile, workers, verify)
	},
}

var verifyCmd = &cli.Command{
	Name:    "verify",
	Usage:   "Check an assignment for blocking pairs",
	Aliases: []string{"v"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "instance",
			Required: true,
			Usage:    "specify the input instance (.json or .yaml)",
		},
		&cli.StringFlag{
			Name:     "assignment",
			Required: true,
			Usage:    "specify the input assignment (.json or .yaml)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log with development settings",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			instanceFile   = ctx.String("instance")
			assignmentFile = ctx.String("assignment")
			verbose        = ctx.Bool("verbose")
		)

		logger, err := newLogger(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		return doVerify(ctx.Context, logger, instanceFile, assignmentFile)
	},
}
