// Package param declares continuous plugin parameters and the value
// conversions around them.
//
// A FloatParam stores its plain value in an atomic word so a UI or host
// goroutine can write it while the audio goroutine reads it. Each parameter
// owns a Range mapping plain values to the normalized [0, 1] domain hosts
// automate in, an optional smooth.Smoother following the modulated plain
// value, a unit label and value/string formatters.
//
// Registry keeps parameters in declaration order and resolves automation
// Change events by parameter ID.
package param
