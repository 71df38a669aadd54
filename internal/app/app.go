// Package app wires the demo application: window, simulated XR session,
// frame loop, and HUD.
package app

import (
	"fmt"
	"net/http"
	"time"

	"xrplace/internal/appstate"
	"xrplace/internal/config"
	"xrplace/internal/engine"
	"xrplace/internal/interaction"
	"xrplace/internal/metrics"
	"xrplace/internal/tracker"
	"xrplace/internal/world"
	"xrplace/internal/xr"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type App struct {
	cfg *config.Config
	log zerolog.Logger

	world     *world.World
	store     *appstate.Store
	notifier  *xr.Notifier
	session   *xr.SimSession
	tracker   *tracker.SurfaceTracker
	selection *interaction.SelectionController
	met       *metrics.Metrics

	handDevice *xr.InputDevice
}

func New(cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		world:    world.New(float32(cfg.FloorExtent)),
		store:    appstate.NewStore(),
		notifier: &xr.Notifier{},
	}
}

func (a *App) Run() error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(int32(a.cfg.WindowWidth), int32(a.cfg.WindowHeight), a.cfg.WindowTitle)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.cfg.TargetFPS))

	a.world.Initialize()
	defer a.world.Unload()

	trackerCfg := tracker.DefaultConfig()
	trackerCfg.SpawnNudge = float32(a.cfg.SpawnNudge)
	trackerCfg.PulseSeconds = float32(a.cfg.PulseSeconds)
	a.tracker = tracker.New(a.world.Scene, world.NewFactory(), a.store, a.notifier, trackerCfg, a.log)
	defer a.tracker.Dispose()

	if a.cfg.MetricsAddr != "" {
		a.met = metrics.New()
		a.tracker.SetMetrics(a.met)
		a.serveMetrics()
	}

	selCfg := interaction.DefaultConfig()
	selCfg.MaxDistance = float32(a.cfg.PickMaxDistance)
	camera := a.world.Camera()
	a.selection = interaction.New(a.world.Scene, camera.ScreenRay, a.store, selCfg, a.log)
	defer a.selection.Dispose()

	a.session = xr.NewSimSession(float32(a.cfg.FloorExtent))
	a.notifier.SessionStarted.Invoke(a.session)

	for !rl.WindowShouldClose() {
		a.update()
		a.draw(camera.GetRaylibCamera())
	}

	a.notifier.SessionEnded.Invoke()
	return nil
}

func (a *App) serveMetrics() {
	srv := &http.Server{
		Addr:         a.cfg.MetricsAddr,
		Handler:      a.met.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		a.log.Info().Str("addr", a.cfg.MetricsAddr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func (a *App) update() {
	dt := rl.GetFrameTime()
	mouse := rl.GetMousePosition()

	a.selection.SetPointer(mouse)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.selection.HandleClick()
	}

	// Space or right click stands in for the XR select event.
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsMouseButtonPressed(rl.MouseRightButton) {
		a.notifier.Select.Invoke()
	}

	// H toggles a simulated right-hand controller whose targeting ray
	// follows the mouse.
	if rl.IsKeyPressed(rl.KeyH) {
		a.toggleHand()
	}

	frame := &xr.SimFrame{
		Session: a.session,
		Dt:      dt,
		GazeRay: a.gazeRay(),
	}
	if a.handDevice != nil {
		ray := a.world.Camera().ScreenRay(mouse)
		frame.HandRay = &ray
	}

	a.tracker.Update(frame)
	a.selection.Update()
	a.world.Update(dt)
}

// gazeRay projects through the screen center, standing in for head gaze.
func (a *App) gazeRay() rl.Ray {
	center := rl.Vector2{
		X: float32(rl.GetScreenWidth()) / 2,
		Y: float32(rl.GetScreenHeight()) / 2,
	}
	return a.world.Camera().ScreenRay(center)
}

func (a *App) toggleHand() {
	if a.handDevice == nil {
		d := xr.InputDevice{ID: uuid.New(), Handedness: xr.HandRight}
		a.handDevice = &d
		a.session.AddDevice(d)
		a.notifier.DeviceAdded.Invoke(d)
		a.log.Info().Msg("right-hand device connected")
		return
	}
	d := *a.handDevice
	a.handDevice = nil
	a.session.RemoveDevice(d)
	a.notifier.DeviceRemoved.Invoke(d)
	a.log.Info().Msg("right-hand device disconnected")
}

func (a *App) draw(camera rl.Camera3D) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(camera)
	a.world.Draw()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText("Space/RMB: place object  LMB: select  H: toggle hand ray", 10, 10, 20, rl.DarkGray)
	rl.DrawFPS(10, 35)

	y := float32(60)
	gui.Label(rl.Rectangle{X: 10, Y: y, Width: 300, Height: 20},
		fmt.Sprintf("Surface detected: %v", a.store.ReticleVisible))
	y += 24
	gui.Label(rl.Rectangle{X: 10, Y: y, Width: 300, Height: 20},
		fmt.Sprintf("Objects placed: %d", a.tracker.SpawnCount()))
	y += 24
	if a.store.SelectedUID != 0 {
		if obj := a.world.Scene.FindByUID(a.store.SelectedUID); obj != nil {
			gui.Label(rl.Rectangle{X: 10, Y: y, Width: 300, Height: 20},
				fmt.Sprintf("Selected: %s", obj.Name))
			y += 24
		}
	}
	if a.store.LastError != "" {
		rl.DrawText(a.store.LastError, 10, int32(y)+4, 20, rl.Red)
	}

	handOn := gui.CheckBox(rl.Rectangle{X: 10, Y: float32(a.cfg.WindowHeight) - 34, Width: 20, Height: 20},
		"Right-hand ray", a.handDevice != nil)
	if handOn != (a.handDevice != nil) {
		a.toggleHand()
	}
}
