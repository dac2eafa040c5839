// Package controller dispatches calculator button presses.
//
// A Controller is created once at startup and is the single owner of the
// expression buffer, the presenter and the evaluator. Each press is
// classified (see Classify) and handled synchronously. Equals is split in
// three so an event loop never blocks on the network:
//
//	frame, req := c.Press("=")        // Idle -> Requesting, snapshot taken
//	done := c.Run(ctx, req)           // network call, off the loop
//	frame = c.Complete(done)          // result or "Error", back to Idle
//
// Nothing stops the user from editing while a request is outstanding; the
// completion then overwrites those edits.
package controller
