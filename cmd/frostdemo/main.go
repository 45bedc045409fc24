// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command frostdemo renders a scene with a frosted glass panel to PNG.
//
// Settings come from flags, FROST_* environment variables and an optional
// YAML file (see package config), in that order of precedence:
//
//	frostdemo --algorithm box --radius 8 --frames 30 -o frost.png
//	FROST_OVERLAY=#00000040 frostdemo -c frost.yaml
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
