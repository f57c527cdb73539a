// Package preflight provides readiness checks for the filesystem paths and
// object storage that qap depends on.
//
// The CLI "qap status" command runs RunAll and renders the results. The
// sublist command uses CheckReadableDir on the site folder before a scan so
// operators see a clear diagnostic instead of a walk error.
package preflight
