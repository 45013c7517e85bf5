// SPDX-FileCopyrightText: 2025 The Permcalc Authors
// SPDX-License-Identifier: EUPL-1.2

// Package main provides the CLI entry point for permcalc.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/janderssonse/permcalc/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.App().Execute(ctx, os.Args)
}
