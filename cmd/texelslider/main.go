// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelslider/main.go
// Summary: Entry point for the texelslider CLI.

package main

func main() {
	Execute()
}
