// arcsend serializes a mesh and streams it to an AR device over UDP.
package main

import (
	"flag"
	"net"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Leodas-Codes/ARcademia/mesh"
	"github.com/Leodas-Codes/ARcademia/sender"
	"github.com/pterm/pterm"
)

var (
	cfgPath  = flag.String("c", "", "TOML config file")
	dest     = flag.String("d", "", "destination IP")
	port     = flag.Int("p", 0, "destination port")
	chunk    = flag.Int("chunk", 0, "fragment body size in bytes")
	meshPath = flag.String("f", "", "mesh JSON file (default: built-in demo quad)")
	describe = flag.Bool("describe", false, "print the model narration before sending")
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
	if *dest != "" {
		cfg.Dest = *dest
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *chunk != 0 {
		cfg.ChunkSize = *chunk
	}

	var m *mesh.Mesh
	var name string
	if *meshPath != "" {
		var err error
		if m, err = mesh.ReadFile(*meshPath); err != nil {
			pterm.Error.Printfln("load %s: %s", *meshPath, err.Error())
			return
		}
		name = filepath.Base(*meshPath)
	} else {
		m, name = demoQuad(), "demo quad"
	}

	if *describe {
		pterm.Info.Println(mesh.Analyze(m, name).Describe())
	}

	addr := net.JoinHostPort(cfg.Dest, strconv.Itoa(cfg.Port))
	s, err := sender.New(addr, &sender.Config{ChunkSize: cfg.ChunkSize, LogPath: cfg.LogPath})
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	defer s.Close()

	start := time.Now()
	n, err := s.Send(m, start)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}

	fragments := (n + cfg.ChunkSize - 1) / cfg.ChunkSize
	if fragments < 1 {
		fragments = 1
	}
	pterm.Success.Printfln("sent %s: %d bytes as %d fragments to %s in %s",
		name, n, fragments, addr, time.Since(start).Round(time.Millisecond))
}

func demoQuad() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices:  []mesh.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		Triangles: []mesh.Triangle{{0, 1, 2}, {0, 2, 3}},
	}
}
