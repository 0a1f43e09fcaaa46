// Package smooth provides per-sample parameter smoothing for real-time
// processors.
//
// A Smoother turns a control value that may jump at arbitrary times into a
// click-free sequence of per-sample values. Three styles are available:
//   - None: the target takes effect immediately.
//   - Linear: constant additive step over the configured time.
//   - Logarithmic: constant multiplicative step, suited to gains and
//     frequencies that are perceived on a log scale.
//
// SetTarget may be called from any goroutine while the audio goroutine calls
// Next; the target is exchanged through a single atomic word, so neither side
// blocks and a target is never observed half-written.
package smooth
