package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/oclimb/animation"
	"github.com/oomph-ac/oclimb/authority"
	"github.com/oomph-ac/oclimb/authority/wsrelay"
	"github.com/oomph-ac/oclimb/climb"
	"github.com/oomph-ac/oclimb/game"
	"github.com/oomph-ac/oclimb/movement"
	"github.com/oomph-ac/oclimb/settings"
	"github.com/oomph-ac/oclimb/worker"
	"github.com/oomph-ac/oclimb/world"
	"github.com/sirupsen/logrus"
)

const settingsPath = "climbsim.toml"

// The following program simulates an agent walking up to a wall, climbing it and mantling onto
// its top. Proxies may connect over the websocket relay to request climbs for the agent.
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	path := settingsPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	s := readSettings(log, path)
	if lvl, err := logrus.ParseLevel(s.Server.LogLevel); err != nil {
		log.Warnf("unknown log level %q, using info", s.Server.LogLevel)
	} else {
		log.SetLevel(lvl)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Fatalf("sentry init failed: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if s.Server.Stats || os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	dbg := game.NewDebugger(log)
	modes, unknown := s.DebugModes()
	for _, mode := range modes {
		dbg.SetMode(mode, true)
	}
	if len(unknown) > 0 {
		log.Warnf("unknown debug modes: %v", unknown)
	}

	srv := authority.NewServer(log, authority.NewChannel(64), s.Server.ReplicationTolerance)
	pool := worker.NewPool(0)
	defer pool.Close()
	srv.SetPool(pool)

	if err := srv.AddAgent(newClimber(s, newScene(), dbg)); err != nil {
		log.Fatalf("error adding agent: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if s.Server.RelayAddress != "" {
		hs := &http.Server{Addr: s.Server.RelayAddress, Handler: wsrelay.NewHandler(srv, log)}
		go func() {
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("relay stopped: %v", err)
			}
		}()
		defer hs.Close()
		log.Infof("relay listening on %v", s.Server.RelayAddress)
	}

	log.Infof("simulating at %d ticks per second", s.Server.TickRate)
	if err := srv.Run(ctx, s.Server.TickRate); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("simulation stopped: %v", err)
	}
}

// readSettings loads the settings file, writing the default one first if it doesn't exist yet.
func readSettings(log *logrus.Logger, path string) settings.Settings {
	if err := settings.SaveDefault(path); err == nil {
		log.Infof("created default settings at %v", path)
	} else if !errors.Is(err, settings.ErrExists) {
		log.Fatalf("error creating settings: %v", err)
	}

	s, err := settings.Load(path)
	if err != nil {
		log.Fatalf("error reading settings: %v", err)
	}
	return s
}

// newScene returns flat ground with a 3m wall standing a metre ahead of the origin.
func newScene() *world.World {
	w := world.New()
	w.AddBox(cube.Box(-2000, -100, -2000, 2000, 0, 2000))
	w.AddBox(cube.Box(-500, 0, 100, 500, 300, 200))
	return w
}

func newClimber(s settings.Settings, w world.Querier, dbg *game.Debugger) *authority.Agent {
	conf := s.ClimbConfig()
	b := movement.NewBase(0, w, s.MovementConfig(), dbg)
	b.SetPos(mgl32.Vec3{0, b.HalfHeight(), 0})

	var (
		opts   []climb.Option
		player *animation.Player
	)
	if name := s.Climbing.LedgeClimbMontage; name != "" {
		lib := animation.NewLibrary()
		lib.Register(climb.MantleMontage(name, conf))
		montage, _ := lib.Get(name)

		player = animation.NewPlayer()
		opts = append(opts, climb.WithAnimation(player, montage))
	}

	a := authority.NewAgent("climber", climb.New(b, conf, opts...), player)
	a.Driver = driveClimber(dbg)
	return a
}

// driveClimber walks the agent toward the wall and keeps asking to climb until it stands on top.
func driveClimber(dbg *game.Debugger) func(a *authority.Agent, tick uint64) {
	var done bool
	return func(a *authority.Agent, tick uint64) {
		b := a.Climb.Base()
		switch {
		case done:
			b.SetInput(mgl32.Vec3{})
		case a.Climb.IsClimbing() || a.Climb.Mantling():
			b.SetInput(game.Up)
		case b.Pos().Y() > 250 && b.Mode() == movement.ModeWalking:
			done = true
			dbg.Log().WithField("agent", a.Name).Infof("reached the top at %v", b.Pos())
		default:
			b.SetInput(game.Forward)
			if err := a.Climb.RequestClimb(); err != nil {
				dbg.Log().Warnf("climb request failed: %v", err)
			}
		}
		dbg.Notify(game.DebugModeMovement, tick%60 == 0, "tick %d: pos=%v mode=%v", tick, b.Pos(), b.Mode())
	}
}
