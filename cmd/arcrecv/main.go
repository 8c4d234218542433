// arcrecv stands in for the AR device: it reassembles mesh messages off
// a UDP port and narrates what arrived.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Leodas-Codes/ARcademia/mesh"
	"github.com/Leodas-Codes/ARcademia/receiver"
	"github.com/pterm/pterm"
)

var (
	cfgPath   = flag.String("c", "", "TOML config file")
	listen    = flag.String("l", "", "listen address")
	statsAddr = flag.String("stats", "", "HTTP status API address (disabled when empty)")
)

func main() {
	flag.Parse()

	cfg := defaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = loadConfig(*cfgPath); err != nil {
			pterm.Error.Println(err.Error())
			return
		}
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *statsAddr != "" {
		cfg.StatsAddr = *statsAddr
	}

	r, err := receiver.New(cfg.Listen, &receiver.Config{
		Timeout: cfg.Timeout,
		Backlog: cfg.Backlog,
		LogPath: cfg.LogPath,
	})
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	defer r.Close()
	pterm.Info.Printfln("listening on %s", r.LocalAddr())

	if cfg.StatsAddr != "" {
		go serveStats(cfg.StatsAddr, r)
		pterm.Info.Printfln("status API on %s", cfg.StatsAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		r.Close()
	}()

	go func() {
		n := 0
		for res := range r.Results() {
			if res.Err != nil {
				pterm.Warning.Printfln("message from %s: %s", res.From, res.Err.Error())
				continue
			}
			n++
			name := fmt.Sprintf("mesh #%d from %s", n, res.From)
			a := mesh.Analyze(res.Mesh, name)
			pterm.Success.Printfln("%s: %d bytes, captured %s",
				name, res.Payload, res.CapturedAt.Format("15:04:05.000"))
			pterm.Info.Println(a.Describe())
		}
	}()

	if err := r.Serve(ctx); err != nil && ctx.Err() == nil {
		pterm.Error.Println(err.Error())
	}
}
