// Server for the GoMentalist presentation.
//
// The browser side must be compiled first:
//
//	GOARCH=wasm GOOS=js go build -o web/app.wasm ./cmd/wasm
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/GoMentalist/internal/config"
	"github.com/janpfeifer/GoMentalist/internal/server"
	"k8s.io/klog/v2"
)

var (
	flagAddr   = flag.String("addr", "", "Address to listen on (default: auto-port on localhost)")
	flagConfig = flag.String("config", "", "YAML configuration file with palette and decoy policy")
	flagEnv    = flag.String("env", ".env", "Environment file to load, if it exists")
	flagWebDir = flag.String("web", "", "Directory with static files and app.wasm (default: web)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if err := config.LoadDotEnv(*flagEnv); err != nil {
		klog.Exitf("Failed to load environment: %v", err)
	}
	cfg, err := config.FromEnv(*flagConfig)
	if err != nil {
		klog.Exitf("Failed to load configuration: %v", err)
	}
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}
	if *flagWebDir != "" {
		cfg.WebDir = *flagWebDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make(chan *server.ServerState, 1)
	go func() {
		state := <-started
		fmt.Printf("GoMentalist server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Fatal(err)
	}
}
