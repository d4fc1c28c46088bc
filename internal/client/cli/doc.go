// Package cli implements the interactive softhub command-line client.
//
// The REPL reads one command per line:
//
//	help                      show available commands
//	list | l                  list software, newest first
//	tree                      list software grouped by name
//	upload                    publish a local .exe (interactive prompts)
//	download <serverFilename> fetch a payload into the download directory
//	token                     enter the upload token (input is hidden)
//	exit | quit               leave the program
//
// All user interaction goes through small seams (printlnFn, readPassword)
// so commands can be tested without a terminal.
package cli
