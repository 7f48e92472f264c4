package util

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// SetupInterruptHandler cancels the returned context on Ctrl-C / SIGTERM and
// removes half-written *.tmp files from dirs. A second signal exits at once.
func SetupInterruptHandler(parent context.Context, dirs ...string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sig := make(chan os.Signal, 2)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
		case <-ctx.Done():
			signal.Stop(sig)
			return
		}

		fmt.Println("\nInterrupt received. Cleaning up...")
		cancel()

		for _, dir := range dirs {
			CleanupTempFiles(dir)
		}

		go func() {
			<-sig
			fmt.Println("\nExiting due to second interrupt.")
			os.Exit(1)
		}()
	}()

	return ctx, cancel
}

// CleanupTempFiles removes *.tmp files left under root.
func CleanupTempFiles(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmp") {
			return nil
		}

		if err := os.Remove(path); err != nil {
			fmt.Printf("Error cleaning up %s: %v\n", path, err)
		} else {
			fmt.Printf("Removed %s\n", path)
		}

		return nil
	})
}
