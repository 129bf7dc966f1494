// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	flags "github.com/jessevdk/go-flags"
)

func main() {
	if err := titanctlMain(); err != nil {
		os.Exit(1)
	}
}

// titanctlMain is the real main function for titanctl.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func titanctlMain() error {
	cfg, cmd, err := loadConfig(os.Args[1:])
	if err != nil {
		// go-flags already printed parse errors and help.
		if _, ok := err.(*flags.Error); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cmd.run(ctx, cfg, os.Stdout); err != nil {
		log.Errorf("%s: %v", cmd.name, err)
		return err
	}
	return nil
}
