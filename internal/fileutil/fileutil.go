// Package fileutil holds file permission modes shared by writers.
package fileutil

import "os"

// ReadableByAll is the file permission mode for generated source files that
// build tools and other users need to read.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode for directories created for output.
const DirMode os.FileMode = 0o755
