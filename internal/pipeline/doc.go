// Package pipeline runs batches of quantize jobs against blob stores.
//
// Each job loads one image, quantizes it and stores the result. Jobs run
// concurrently up to Runner.Concurrency; the first failure cancels the
// remaining jobs. Store calls and pixel memory are governed by an optional
// resource.Controller.
package pipeline
