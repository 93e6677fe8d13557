// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Command curatorctl runs the recommendation pipeline offline against a
// catalog file. It is meant for curators tuning a catalog and for scripting:
//
//	curatorctl catalog validate exhibits.json
//	curatorctl catalog list --category astronomy
//	curatorctl analyze --age-group adults --group-type family --time-slot morning \
//	    --interest space --interest dinosaurs --seed 42
package main

import (
	"context"
	"os"

	"github.com/tomtom215/curator/internal/logging"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		logging.Fatal().Err(err).Msg("curatorctl failed")
	}
}
