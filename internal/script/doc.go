// Package script implements console commands in Lua.
//
// A script defines a global function run(argv). argv is a table of the
// invocation tokens, argv[1] being the command's own name. The script writes
// to the console with write(...) or print(...) and returns its status:
//
//	function run(argv)
//	  if #argv < 2 then return false end
//	  write("hello ", argv[2], "\r\n")
//	end
//
// A number is returned as-is, nil or true mean success (0), and false means
// failure (1). Scripts run in a sandbox with only the base, table, string and
// math libraries. File and chunk loading (dofile, loadfile, load,
// loadstring) and module loading (require, module) are removed.
package script
