package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/giantworm/engine/scene"
	"github.com/memmaker/giantworm/engine/util"
	"github.com/memmaker/giantworm/game"
	"golang.org/x/term"
)

type demoSettings struct {
	PrefabFile string
	Frames     int
	DeltaTime  float64
	Realtime   bool
	Watch      bool
	Debug      bool
}

type logRays struct{}

func (logRays) DrawRay(origin, direction mgl32.Vec3, _ mgl32.Vec3) {
	util.LogChaserDebug(fmt.Sprintf("[Ray] %v -> %v", origin, direction))
}

func main() {
	settings := demoSettings{}
	flag.StringVar(&settings.PrefabFile, "prefab", "./assets/prefabs/giant_worm.yaml", "worm prefab")
	flag.IntVar(&settings.Frames, "frames", 600, "frames to simulate, 0 runs until interrupted")
	flag.Float64Var(&settings.DeltaTime, "dt", 1.0/60.0, "seconds per frame")
	flag.BoolVar(&settings.Realtime, "realtime", false, "sleep dt between frames")
	flag.BoolVar(&settings.Watch, "watch", false, "reload the prefab when it changes (implies -realtime)")
	flag.BoolVar(&settings.Debug, "debug", false, "debug logging")
	flag.Parse()

	if settings.Debug {
		util.GLOBAL_LOG_LEVEL = util.LogLevelDebug
	}
	if err := runGame(settings); err != nil {
		util.LogSystemError(err.Error())
		os.Exit(1)
	}
}

func runGame(settings demoSettings) error {
	spec, err := game.LoadPrefab(settings.PrefabFile)
	if err != nil {
		return err
	}

	world := scene.NewScene()
	player := scene.NewGameObject("player", mgl32.Vec3{8, 0, 0})
	world.Add(player)
	for _, name := range append(append([]string{}, spec.Attack.EnterActivate...), spec.Attack.ExitActivate...) {
		world.Add(scene.NewGameObject(name, mgl32.Vec3{}))
	}
	patrol := util.NewPingPongLerper(util.Lerp3, player.Transform().SetPosition, mgl32.Vec3{8, 0, 0}, mgl32.Vec3{-8, 0, 4}, 6.0)

	worm, err := game.BuildWorm(world, spec, player)
	if err != nil {
		return err
	}
	if settings.Debug {
		worm.Chaser.SetRayDrawer(logRays{})
	}

	var reloads <-chan string
	if settings.Watch {
		settings.Realtime = true
		watcher, err := game.NewWatcher(filepath.Dir(settings.PrefabFile))
		if err != nil {
			return err
		}
		defer watcher.Close()
		reloads = watcher.Events
		go func() {
			for err := range watcher.Errors {
				util.LogSystemError(fmt.Sprintf("[Watch] %v", err))
			}
		}()
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	status := newStatusPrinter(term.IsTerminal(int(os.Stdout.Fd())))
	defer status.Done()

	for frame := 0; settings.Frames <= 0 || frame < settings.Frames; frame++ {
		select {
		case <-interrupt:
			return nil
		case changed := <-reloads:
			reloadPrefab(worm, settings.PrefabFile, changed)
		default:
		}

		patrol.Update(settings.DeltaTime)
		player.Transform().SetLookAt(worm.Object.GetPosition())
		world.Update(settings.DeltaTime)
		status.Print(frame, worm)

		if settings.Realtime {
			time.Sleep(time.Duration(settings.DeltaTime * float64(time.Second)))
		}
	}
	return nil
}

func reloadPrefab(worm *game.Worm, prefabFile, changed string) {
	if filepath.Clean(changed) != filepath.Clean(prefabFile) {
		return
	}
	spec, err := game.LoadPrefab(prefabFile)
	if err != nil {
		util.LogSystemError(fmt.Sprintf("[Watch] keeping previous settings: %v", err))
		return
	}
	worm.Chaser.ApplyPrefab(spec)
	util.LogSystemInfo(fmt.Sprintf("[Watch] reloaded %s: speed=%.2f stop=%.2f", prefabFile, spec.Speed, spec.StopDistance))
}
