package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/host/v3"

	"github.com/coreman2200/smart-lamp/internal/app"
	"github.com/coreman2200/smart-lamp/internal/config"
	diag "github.com/coreman2200/smart-lamp/internal/diagnostics"
	"github.com/coreman2200/smart-lamp/internal/driver/preview"
	"github.com/coreman2200/smart-lamp/internal/led"
	"github.com/coreman2200/smart-lamp/internal/render"
	"github.com/coreman2200/smart-lamp/internal/ws"
)

func main() {
	def := config.Default()

	// ---- Flags (defaults < config file < flags given on the command line) ----
	var (
		configPath  = flag.String("config", "lamp.yaml", "path to lamp.yaml")
		width       = flag.Int("width", def.Width, "panel columns")
		height      = flag.Int("height", def.Height, "panel rows")
		brightness  = flag.Int("brightness", def.Brightness, "global brightness 0..255")
		tickMS      = flag.Int("tick", def.TickMS, "milliseconds between frames")
		switchEvery = flag.Int("switch-every", def.SwitchEvery, "ticks per effect; <= 0 holds the first")
		driver      = flag.String("driver", def.Driver, "driver: sim | spi | console")
		spiPort     = flag.String("spi-port", "", "SPI port name, empty for the first one")
		addr        = flag.String("addr", ":8080", "preview HTTP listen address, empty disables")
		seed        = flag.Int64("seed", 0, "random seed, 0 uses the clock")
		calibrate   = flag.Bool("calibrate", false, "sweep one pixel through the wiring order")
		logLevel    = flag.String("log-level", "info", "zerolog level")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err != nil {
		log.Warn().Err(err).Str("level", *logLevel).Msg("bad log level; using info")
	} else {
		zerolog.SetGlobalLevel(lvl)
	}

	// ---- Load lamp.yaml (optional) ----
	cfg := def
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		cfg.Preview.Addr = *addr
	} else {
		cfg = c
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "brightness":
			cfg.Brightness = *brightness
		case "tick":
			cfg.TickMS = *tickMS
		case "switch-every":
			cfg.SwitchEvery = *switchEvery
		case "driver":
			cfg.Driver = *driver
		case "spi-port":
			cfg.SPI.Port = *spiPort
		case "addr":
			cfg.Preview.Addr = *addr
		case "seed":
			cfg.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	l := cfg.Layout()

	// ---- Driver selection ----
	var fallback error
	var drv render.Driver
	switch cfg.Driver {
	case "spi":
		strip, err := openSPI(cfg.SPI.Port, l.Count())
		if err != nil {
			log.Warn().Err(err).
				Str("driver", "spi").
				Str("port", cfg.SPI.Port).
				Msg("SPI init failed; falling back to SIM")
			fallback = err
			drv = led.NewSim()
		} else {
			drv = strip
		}
	case "console":
		drv = led.NewConsole(l.Count())
	default:
		drv = led.NewSim()
	}
	out := drv

	// ---- Preview server ----
	var (
		hub  *ws.Hub
		srv  *http.Server
		core *app.Core
	)
	if cfg.Preview.Addr != "" {
		hub = ws.NewHub(l.Width, l.Height, l.QuirkColumn, cfg.Driver)
		drv = preview.New(drv, hub, func() string {
			if core == nil {
				return "boot"
			}
			return core.Sched.Effect().Name()
		})

		mux := http.NewServeMux()
		hub.Routes(mux)
		srv = &http.Server{
			Addr:         cfg.Preview.Addr,
			Handler:      withCORS(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Preview.Addr).Str("driver", cfg.Driver).Msg("HTTP server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("http server crashed")
			}
		}()
	}

	opts := app.Options{
		Layout:      l,
		Driver:      drv,
		Brightness:  uint8(cfg.Brightness),
		SwitchEvery: cfg.SwitchEvery,
		Seed:        cfg.Seed,
		Calibrate:   *calibrate,
	}
	if hub != nil {
		opts.Reporter = hub
	}
	c, err := app.InitCore(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("lamp init failed")
	}
	core = c
	if fallback != nil && hub != nil {
		hub.Report(diag.DriverFallback("spi", fallback))
	}

	log.Info().
		Int("width", l.Width).
		Int("height", l.Height).
		Int("brightness", cfg.Brightness).
		Int64("seed", cfg.Seed).
		Strs("effects", core.Sched.Names()).
		Msg("lamp running")

	// ---- Run until SIGINT/SIGTERM ----
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := core.Run(ctx, time.Duration(cfg.TickMS)*time.Millisecond); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("render loop stopped")
	}
	log.Info().Msg("shutting down")

	if srv != nil {
		_ = srv.Close()
	}
	if cl, ok := out.(io.Closer); ok {
		if err := cl.Close(); err != nil {
			log.Warn().Err(err).Msg("driver close")
		}
	}
}

func openSPI(port string, count int) (*led.Strip, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return led.OpenSPI(port, count)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
