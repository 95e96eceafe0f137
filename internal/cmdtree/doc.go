// Package cmdtree builds command forests from YAML.
//
//	commands:
//	  - name: echo
//	    help: print arguments
//	    builtin: echo
//	  - name: sub
//	    help: sub-commands
//	    commands:
//	      - name: greet
//	        help: greet someone
//	        usage: "usage: {name} <who>"
//	        script: |
//	          function run(argv)
//	            if #argv < 2 then return false end
//	            write("hello ", argv[2], "\r\n")
//	          end
//
// Every entry has exactly one of builtin (a Go handler supplied by the
// caller), script (Lua source, see package script) or commands (a group).
// In usage, {name} is replaced by the invoked name.
package cmdtree
