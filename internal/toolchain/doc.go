// Package toolchain wraps the external native tools the pipeline depends on.
//
// Every collaborator (runtime trimmer, installer packager, icon utilities,
// distro queries) is a black-box process invoked through the Runner interface
// and inspected only for exit status and captured output. ExecRunner is the
// real implementation; tests substitute a RunnerFunc.
package toolchain
