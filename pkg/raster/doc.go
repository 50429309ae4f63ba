// Package raster composes QR matrices into fixed-size PNG images with an
// optional centred logo, using github.com/disintegration/imaging.
//
// Layout of a composed image with the defaults (canvas 2048, coverage 0.9):
//
//	+--------------------------- 2048 ---------------------------+
//	| 102 px white                                               |
//	|     +------------------ 1843 -------------------+          |
//	|     | QR incl. quiet zone, Lanczos resampled    |          |
//	|     |            +-- logo + frame --+           |          |
//	|     |            |  centred, white  |           |          |
//	|     |            +------------------+           |          |
//	|     +-------------------------------------------+          |
//	+------------------------------------------------------------+
//
// The logo side is SizeRatio of the QR side and is padded by a white frame of
// BorderRatio of the logo side. Because the logo hides the symbol centre it
// should be combined with the High error-correction level.
package raster
