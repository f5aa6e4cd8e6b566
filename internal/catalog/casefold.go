package catalog

import "duke3dmm/internal/strutil"

// eqFold is a local alias for strutil.EqualFold so every name comparison in
// this package reads the same way. Do not reimplement case folding here —
// strutil.EqualFold is the single authority (spec §9).
func eqFold(a, b string) bool { return strutil.EqualFold(a, b) }
