package main

import (
	"flag"
	"os"

	"github.com/janpfeifer/GoMentalist/internal/frontend"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

func main() {
	// Initialize klog for WASM, forcing logs to stderr (console)
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	fs.Set("logtostderr", "true")
	klog.SetOutput(os.Stderr)
	klog.Infof("WASM started!")

	// A single route: the steps of the trick are driven by the session, not by the URL.
	app.Route("/", func() app.Composer { return &frontend.App{} })

	// Initialize the global state, with the settings handed over by the server.
	frontend.InitState()

	// When building for WEB (GOOS=js GOARCH=wasm), app.Run() executes the frontend logic
	app.RunWhenOnBrowser()
}
