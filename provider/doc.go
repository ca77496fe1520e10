// Package provider defines the pluggable backend adapter pattern shared
// by the transcription and translation packages: a base Provider
// interface with availability probing, factories that build adapters
// from generic config maps, and a typed factory registry.
package provider
