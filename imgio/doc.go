// Package imgio bridges the array container and the standard Go image
// ecosystem.
//
// The pipeline core consumes decoded images from external readers and hands
// finished arrays to external writers or viewers; this package supplies those
// adapters. Decoding and encoding delegate to disintegration/imaging, so the
// supported file formats are whatever that library registers.
package imgio
