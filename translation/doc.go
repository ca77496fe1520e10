// Package translation defines the translation provider interface for
// turning individual lyric lines into a target language. The httpapi
// subpackage implements it against the HTTP translation service.
package translation
