package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/smart-lamp/internal/app"
	"github.com/coreman2200/smart-lamp/internal/driver/fake"
	"github.com/coreman2200/smart-lamp/internal/layout"
	"github.com/coreman2200/smart-lamp/internal/sequence"
)

func main() {
	var (
		ticks  = flag.Int("ticks", 400, "frames to render")
		effect = flag.String("effect", "", "hold a single effect (snow, colors, matrix, fire)")
		seed   = flag.Int64("seed", 1, "random seed")
		width  = flag.Int("width", 8, "panel columns")
		height = flag.Int("height", 10, "panel rows")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	every := sequence.DefaultEvery
	if *effect != "" {
		every = 0
	}
	core, err := app.InitCore(app.Options{
		Layout:      layout.New(*width, *height),
		Driver:      &fake.Driver{Out: os.Stdout},
		Brightness:  64,
		SwitchEvery: every,
		Seed:        *seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("init")
	}
	if *effect != "" && !core.Jump(*effect) {
		log.Fatal().Str("effect", *effect).Strs("known", core.Sched.Names()).Msg("unknown effect")
	}

	core.Seq.Start()
	for i := 0; i < *ticks; i++ {
		if err := core.Step(); err != nil {
			log.Warn().Err(err).Int("tick", i).Msg("frame dropped")
		}
	}
	log.Info().Int("ticks", *ticks).Int("switches", core.Seq.Switches()).Str("effect", core.Sched.Effect().Name()).Msg("done")
}
