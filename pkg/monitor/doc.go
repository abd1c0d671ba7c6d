// Package monitor describes attached displays and discovers them.
//
// A [Record] is the registry's view of one connected output: its discovery
// index, the RandR output name ("link") passed verbatim to xrandr's --output
// flag, its preferred resolution and a human readable model name decoded from
// EDID.
//
// # Probing
//
// Two [Prober] implementations exist:
//   - the xrandr prober in package xrandr, which runs "xrandr --props" and
//     parses the text with [ParseProps]
//   - [RandRProber], which queries the X server directly over the RandR
//     extension
//
// Both assign indices in discovery order and name monitors through a [Namer].
//
// # Naming
//
// [EDIDDecodeNamer] pipes the EDID into the edid-decode tool; [DescriptorName]
// decodes the EDID display descriptors natively. [FallbackNamer] chains namers
// and [CachedNamer] memoises results in a cache.Cache keyed by the EDID hash.
package monitor
