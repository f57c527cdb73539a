// Package main hosts the qap operator CLI.
//
// The Cobra command tree builds scan sublists, inspects written manifests,
// moves data to and from object storage, and reports readiness. It resolves
// configuration and logging once per invocation so subcommands can focus on
// their output. The heavy lifting lives in the internal packages.
package main
