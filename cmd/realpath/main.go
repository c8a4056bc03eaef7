// realpath prints the canonical absolute form of each PATH.
//
// Every symlink is expanded, "." and ".." are removed and separators are collapsed.
// A ".." moves up from the target of a preceding symlink.
// A missing name followed by ".." is not an error.
//
// # Usage
//
//	realpath [flags] PATH...
//
// # Flags
//
//	-c, --config string      read settings from a yaml file; flags take precedence
//	-l, --max-symlinks int   maximum symlink expansions per path (default 40)
//	-s, --size int           output buffer capacity in bytes, including the terminating NUL (default 4096)
//	-r, --root string        resolve under this directory as if it were /
//	    --wd string          working directory for relative paths
//	-t, --table              print results as a table
//	-p, --partial            print the resolved prefix of paths that failed
//	-v, --verbose            log symlink expansions
//
// The config file takes the keys max_symlinks, size, root, wd, table, partial and verbose.
//
// The command exits with status 1 if any PATH fails to resolve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ngicks/go-fsys-helper/realpath/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "realpath: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
