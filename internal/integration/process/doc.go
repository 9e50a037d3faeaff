// Package process runs local documentation commands such as pydoc.
//
// A Supervisor owns every command started on behalf of a lookup so that
// the host can kill them on exit. Runner sits on top of it: it starts a
// command, captures stdout and stderr combined, decodes the bytes and
// hands an Output to a completion callback.
//
//	sup := process.NewSupervisor()
//	defer sup.Shutdown(2 * time.Second)
//
//	r := process.NewRunner(sup, process.WithDeliver(loop.Post))
//	err := r.Run(ctx, []string{"pydoc", "len"}, func(out process.Output) {
//	    panel.Show(out.Display())
//	})
//
// The callback never runs on the goroutine that waited for the command
// when a deliver function is configured; callers that have a UI loop
// pass its Post method.
//
// # Failures
//
// A non-zero exit or a failed start is not returned as an error from
// the callback path. It is reported in Output.ExitCode and Output.Err
// and rendered by Output.Display.
//
// # Thread Safety
//
// Supervisor, Process and Runner are safe for concurrent use.
package process
