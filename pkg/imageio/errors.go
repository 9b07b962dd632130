package imageio

import "errors"

// ErrJPEGXLUnsupported is returned when JPEG-XL output is requested. No
// pure-Go JPEG-XL encoder exists; the reference implementation this
// project is modeled on binds to a C library for it, which this project
// deliberately does not do. Requesting jpegxl fails clearly at startup
// rather than silently falling back to another format.
var ErrJPEGXLUnsupported = errors.New("imageio: jpegxl output is not supported by this build")
