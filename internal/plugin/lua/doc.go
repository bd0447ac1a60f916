// Package lua runs the viewer's startup script in a sandboxed gopher-lua
// state.
//
// Only the base, table, string and math libraries are opened. Loaders that
// read from disk are removed, print is routed to the host log, and require
// only returns the built-in libraries and the hexview module.
//
// # Script API
//
//	hexview.bind("Ctrl+D", "page-down")
//	hexview.shift(0x20)           -- returns the current shift
//	hexview.case_shift(0)
//	hexview.tall(true)
//	hexview.jump(0x4010)
//	local h = hexview.header()    -- {primary, secondary, length, lines}
//	hexview.set("view.batch", 64)
//	print(hexview.get("ui.font"))
//	hexview.log("ready")
//
// # Running
//
//	err := lua.RunFile(ctx, host, "init.lua", lua.WithTimeout(time.Second))
//
// Each call to DoFile or DoString runs under the state's deadline; a script
// that overruns it fails with ErrTimeout.
package lua
