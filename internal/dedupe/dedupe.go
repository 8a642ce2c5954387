package dedupe

// Package dedupe provides the shared singleflight group used to collapse
// concurrent turn-resolution triggers. The cutoff scanner and the
// all-players-ready submission path can both decide to resolve the same
// match at the same moment; routing both through one singleflight.Group
// keyed by match id means only one resolution runs while the other caller
// waits for its result.

import "golang.org/x/sync/singleflight"

// ResolveGroup deduplicates turn resolution requests keyed by match id.
var ResolveGroup singleflight.Group
