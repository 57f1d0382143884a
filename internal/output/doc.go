// Package output renders command results and errors for the readmegen CLI.
//
// Every command writes through a Printer, which speaks two dialects: styled
// text for people and indented JSON for scripts (--json). Styling comes from
// lipgloss and switches off when the writer is not a terminal or when
// --color never is given:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "README written", "markdown": path})
//
// # Exit codes
//
//	output.ExitSuccess     // 0: document written
//	output.ExitUserError   // 1: bad flags, bad config, no sections chosen
//	output.ExitSystemError // 2: unreadable templates, I/O failures
//	output.ExitConflict    // 3: output file already exists
//	output.ExitNoTerminal  // 4: interactive session without a usable terminal
//
// Errors built with NewUserError, NewSystemError, NewConflictError and
// NewNoTerminalError carry their code through wrapping; GetExitCode recovers
// it for the process exit status and for JSON error bodies.
package output
