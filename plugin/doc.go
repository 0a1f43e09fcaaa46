// Package plugin implements LFOCool, a stereo LFO gain modulator.
//
// LfoCool owns two parameters, a frequency in [0, 100] and a modulation
// depth stored as linear gain between -60 dB and 0 dB, and one sine
// oscillator shared by all channels. Process multiplies every channel of a
// block in place by 1 - gain + gain*(1+sin(phase))/2, where gain is the
// smoothed depth.
//
// Host protocol adapters (VST3, CLAP, ...) drive the Plugin interface and are
// not part of this package. Process never allocates, locks or performs I/O;
// parameters may be written from other goroutines at any time.
package plugin
