// Package buffer provides the planar multi-channel audio block processors
// mutate in place. Every channel is a []float64 of the same length; hosts
// with interleaved float32 I/O convert at the edge with Interleave and
// Deinterleave.
package buffer
