// Command pointerplugin builds the bridges as a shared library for hosts
// that load native plugins:
//
//	go build -buildmode=c-shared -o libpointerbridge.so ./cmd/pointerplugin
//
// Handles returned to the host are runtime/cgo handles. Every entry point
// returns a pointer.Result code.
package main

func main() {}
