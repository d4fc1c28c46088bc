// Package flagx helps several independent flag sets share one command line.
// Each config loader picks only the arguments it understands and parses them
// with its own flag.FlagSet, so unknown flags of other loaders never fail.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the arguments of args that belong to the named flags.
//
// Names are given without dashes; both "-name" and "--name" spellings match.
// Value flags keep their value whether it is attached ("-a=:3001") or follows
// as a separate argument ("-a :3001"). Bool flags never consume the next
// argument, so "-strict upload.exe" keeps only "-strict".
//
// The result is never nil.
func FilterArgs(args []string, valueFlags []string, boolFlags ...string) []string {
	kinds := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		kinds[f] = true
	}
	for _, f := range boolFlags {
		kinds[f] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		name, attached, ok := splitFlag(args[i])
		if !ok {
			continue
		}
		takesValue, known := kinds[name]
		if !known {
			continue
		}
		filtered = append(filtered, args[i])
		if attached || !takesValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// splitFlag extracts the flag name of arg and reports whether a value is
// attached with '='.
func splitFlag(arg string) (name string, attached bool, ok bool) {
	if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
		return "", false, false
	}
	name = strings.TrimLeft(arg, "-")
	if before, _, found := strings.Cut(name, "="); found {
		return before, true, true
	}
	return name, false, true
}

// ConfigFileFlag returns the path given with -c or -config, or "" when
// neither is present. When both are given the last one wins.
func ConfigFileFlag() string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"c", "config"}))

	return path
}
