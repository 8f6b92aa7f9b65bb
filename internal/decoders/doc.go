// Package decoders provides implementations of the TreeDecoder interface.
// A decoder turns raw document bytes into the loosely-typed RawNode tree
// that normalisers consume.
package decoders
