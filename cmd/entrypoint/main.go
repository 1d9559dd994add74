// Package main runs the site and the MCP HTTP bridge in one container and
// stops both when either exits.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"
)

const (
	defaultSiteHTTPAddr = "0.0.0.0:8088"
	defaultMCPHTTPAddr  = "0.0.0.0:8089"

	// shutdownGrace is how long children get between SIGTERM and SIGKILL.
	shutdownGrace = 10 * time.Second
)

// childSpec is a command the supervisor starts.
type childSpec struct {
	name string
	path string
	args []string
}

type childExit struct {
	name string
	err  error
}

func main() {
	log.SetPrefix("[ENTRYPOINT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(supervise(ctx, childSpecs(os.LookupEnv), shutdownGrace))
}

// childSpecs lists the site and the MCP bridge with addresses taken from the
// environment.
func childSpecs(lookup func(string) (string, bool)) []childSpec {
	siteAddr := envOrDefault(lookup, "ATELIER_HTTP_ADDR", defaultSiteHTTPAddr)
	mcpAddr := envOrDefault(lookup, "ATELIER_MCP_HTTP_ADDR", defaultMCPHTTPAddr)
	return []childSpec{
		{name: "site", path: "/app/site", args: []string{"-http-addr=" + siteAddr}},
		{name: "mcp", path: "/app/mcp", args: []string{"-transport=http", "-http-addr=" + mcpAddr}},
	}
}

// supervise starts every child and returns the exit code the container
// should use: zero on a signal, the first child's code otherwise. Children
// get SIGTERM when the group stops and SIGKILL once grace has passed.
func supervise(ctx context.Context, specs []childSpec, grace time.Duration) int {
	group, stopGroup := context.WithCancel(ctx)
	defer stopGroup()

	exits := make(chan childExit, len(specs))
	running := 0
	for _, spec := range specs {
		cmd := exec.CommandContext(group, spec.path, spec.args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
		cmd.WaitDelay = grace
		if err := cmd.Start(); err != nil {
			log.Printf("start %s: %v", spec.name, err)
			stopGroup()
			drain(exits, running)
			return 1
		}
		running++
		go func(name string) {
			exits <- childExit{name: name, err: cmd.Wait()}
		}(spec.name)
	}

	select {
	case <-ctx.Done():
		log.Printf("shutdown signal received")
		stopGroup()
		drain(exits, running)
		return 0
	case first := <-exits:
		log.Printf("%s exited: %v", first.name, first.err)
		stopGroup()
		drain(exits, running-1)
		return exitCode(first.err)
	}
}

func drain(exits <-chan childExit, n int) {
	for range n {
		exit := <-exits
		if exit.err != nil {
			log.Printf("%s stopped: %v", exit.name, exit.err)
		}
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func envOrDefault(lookup func(string) (string, bool), key, fallback string) string {
	if lookup == nil {
		return fallback
	}
	value, ok := lookup(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
