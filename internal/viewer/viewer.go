//go:build spinec

// Package viewer implements the interactive skeleton viewer loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/config"
	"github.com/Faultbox/midgard-spine/internal/engine/audio"
	"github.com/Faultbox/midgard-spine/internal/engine/camera"
	"github.com/Faultbox/midgard-spine/internal/engine/input"
	"github.com/Faultbox/midgard-spine/internal/engine/renderer"
	"github.com/Faultbox/midgard-spine/internal/engine/screenshot"
	"github.com/Faultbox/midgard-spine/internal/engine/texture"
	"github.com/Faultbox/midgard-spine/internal/engine/window"
	"github.com/Faultbox/midgard-spine/internal/logger"
	"github.com/Faultbox/midgard-spine/internal/render"
	"github.com/Faultbox/midgard-spine/internal/watch"
	"github.com/Faultbox/midgard-spine/pkg/spine/spinec"
)

// Viewer plays one skeleton in a window.
type Viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.Camera2D
	textures *texture.Loader
	audio    *audio.Player
	builder  *render.Builder

	atlas *spinec.Atlas
	data  *spinec.SkeletonData
	inst  *spinec.Instance

	animations []string
	animation  int
	skins      []string
	skin       int
	paused     bool
	speed      float32

	shots   *screenshot.Writer
	capture bool
	// opened receives skeleton paths chosen in the file dialog.
	opened chan string

	watcher     *watch.Watcher
	stopWatcher context.CancelFunc
	watchDone   chan struct{}
}

// New opens the window and loads the configured skeleton.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		speed:  1,
		opened: make(chan string, 1),
		builder: render.NewBuilder(render.Options{
			Checked:       cfg.Render.Checked,
			LengthLimit:   cfg.Render.LengthLimit,
			Premultiplied: cfg.Render.Premultiplied,
		}),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:  "Spine Viewer",
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window: it needs the GL context.
	w, h := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:         w,
		Height:        h,
		Background:    cfg.Render.Background,
		Premultiplied: cfg.Render.Premultiplied,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.shots = screenshot.NewWriter("screenshots", "spine")
	v.camera = camera.New2D(cfg.Window.Width, cfg.Window.Height)
	v.textures = texture.NewLoader(cfg.Render.Premultiplied)
	spinec.SetTextureLoader(v.textures)

	if cfg.Audio.Enabled {
		v.audio = audio.New()
		v.audio.SetVolume(cfg.Audio.Volume)
		if err := v.audio.Init(); err != nil {
			v.log.Warn("event audio disabled", zap.Error(err))
			v.audio = nil
		}
	}

	if err := v.load(); err != nil {
		v.Close()
		return nil, err
	}

	if cfg.Watch.Enabled {
		if err := v.startWatcher(); err != nil {
			v.log.Warn("hot reload disabled", zap.Error(err))
		}
	}
	return v, nil
}

// load reads the atlas and skeleton and creates the instance.
func (v *Viewer) load() error {
	atlas, data, err := v.readFiles()
	if err != nil {
		return err
	}
	inst, err := spinec.NewInstance(data)
	if err != nil {
		data.Dispose()
		atlas.Dispose()
		return err
	}
	v.atlas, v.data, v.inst = atlas, data, inst
	inst.OnEvent(v.onEvent)
	v.pose()
	return nil
}

func (v *Viewer) readFiles() (*spinec.Atlas, *spinec.SkeletonData, error) {
	sc := v.cfg.Skeleton
	atlas, err := spinec.LoadAtlas(sc.Atlas)
	if err != nil {
		return nil, nil, err
	}
	data, err := spinec.LoadSkeletonData(atlas, sc.Path, sc.Scale)
	if err != nil {
		atlas.Dispose()
		return nil, nil, err
	}
	return atlas, data, nil
}

// pose applies the selected skin and animation after a (re)load.
func (v *Viewer) pose() {
	v.animations = v.data.Animations()
	v.skins = v.data.Skins()
	v.animation = indexOf(v.animations, v.cfg.Skeleton.Animation)
	v.skin = indexOf(v.skins, v.cfg.Skeleton.Skin)

	if len(v.skins) > 0 && v.cfg.Skeleton.Skin != "" {
		if err := v.inst.SetSkin(v.skins[v.skin]); err != nil {
			v.log.Warn("skin not applied", zap.Error(err))
		}
	}
	if len(v.animations) > 0 {
		if err := v.inst.SetAnimation(0, v.animations[v.animation], v.cfg.Skeleton.Loop); err != nil {
			v.log.Warn("animation not applied", zap.Error(err))
		}
	}
	v.inst.Update(0)

	v.log.Info("skeleton loaded",
		zap.String("path", v.data.Path()),
		zap.Int("bones", v.inst.Skeleton().BoneCount()),
		zap.Int("slots", v.inst.Skeleton().SlotCount()),
		zap.Strings("animations", v.animations),
		zap.Strings("skins", v.skins),
	)
	v.updateTitle()
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

func (v *Viewer) onEvent(e spinec.Event) {
	v.log.Debug("event", zap.String("name", e.Name), zap.Float32("time", e.Time))
	if v.audio == nil || e.AudioPath == "" {
		return
	}
	path := v.cfg.AudioPath(e.AudioPath)
	if err := v.audio.Play(path, float64(e.Volume), float64(e.Balance)); err != nil {
		v.log.Warn("event audio failed", zap.String("path", path), zap.Error(err))
	}
}

// reload swaps in freshly read files and reports success. On failure the
// current skeleton is kept.
func (v *Viewer) reload() bool {
	atlas, data, err := v.readFiles()
	if err != nil {
		v.log.Error("reload failed", zap.Error(err))
		return false
	}
	if err := v.inst.Reload(data); err != nil {
		v.log.Error("reload failed", zap.Error(err))
		data.Dispose()
		atlas.Dispose()
		return false
	}
	v.data.Dispose()
	v.atlas.Dispose()
	v.atlas, v.data = atlas, data
	v.pose()
	v.log.Info("reloaded", zap.Uint64("generation", v.inst.Skeleton().Generation()))
	return true
}

func (v *Viewer) startWatcher() error {
	w, err := watch.New(v.cfg.Watch.Debounce, v.cfg.Skeleton.Atlas, v.cfg.Skeleton.Path)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.watcher, v.stopWatcher = w, cancel
	v.watchDone = make(chan struct{})
	go func() {
		defer close(v.watchDone)
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			v.log.Error("watcher stopped", zap.Error(err))
		}
	}()
	return nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")
	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		in := v.input.Update()
		if in.Quit {
			return nil
		}
		v.handleInput(in)
		v.pollReload()
		v.pollOpened()

		if !v.paused {
			v.inst.Update(dt * v.speed)
		}

		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if v.capture {
			v.capture = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (v *Viewer) pollReload() {
	if v.watcher == nil {
		return
	}
	select {
	case ev, ok := <-v.watcher.Events():
		if !ok {
			v.watcher = nil
			return
		}
		v.log.Info("files changed", zap.Strings("paths", ev.Paths))
		v.reload()
	default:
	}
}

func (v *Viewer) handleInput(in *input.Frame) {
	if in.Resized {
		w, h := v.window.DrawableSize()
		v.renderer.Resize(w, h)
		v.camera.Resize(w, h)
	}
	if in.DragX != 0 || in.DragY != 0 {
		v.camera.Pan(in.DragX, in.DragY)
	}
	if in.Wheel != 0 {
		v.camera.ZoomBy(in.Wheel)
	}

	for _, a := range in.Actions {
		switch a {
		case input.ActionPause:
			v.paused = !v.paused
		case input.ActionNextAnimation:
			if len(v.animations) > 0 {
				v.animation = (v.animation + 1) % len(v.animations)
				if err := v.inst.SetAnimation(0, v.animations[v.animation], v.cfg.Skeleton.Loop); err != nil {
					v.log.Warn("animation not applied", zap.Error(err))
				}
			}
		case input.ActionNextSkin:
			if len(v.skins) > 0 {
				v.skin = (v.skin + 1) % len(v.skins)
				if err := v.inst.SetSkin(v.skins[v.skin]); err != nil {
					v.log.Warn("skin not applied", zap.Error(err))
				}
			}
		case input.ActionResetCamera:
			v.camera.Reset(0, 0)
		case input.ActionReload:
			v.reload()
		case input.ActionSlower:
			v.speed = max(v.speed/2, 1.0/16)
		case input.ActionFaster:
			v.speed = min(v.speed*2, 16)
		case input.ActionScreenshot:
			v.capture = true
		case input.ActionOpen:
			v.openDialog()
		}
	}
	if len(in.Actions) > 0 {
		v.updateTitle()
	}
}

func (v *Viewer) updateTitle() {
	title := "Spine Viewer"
	if len(v.animations) > 0 {
		title += " - " + v.animations[v.animation]
	}
	if len(v.skins) > 0 {
		title += " [" + v.skins[v.skin] + "]"
	}
	if v.paused {
		title += " (paused)"
	}
	if v.speed != 1 {
		title += fmt.Sprintf(" x%g", v.speed)
	}
	v.window.SetTitle(title)
}

func (v *Viewer) render() error {
	frame, err := v.builder.Build(v.inst.Skeleton())
	if err != nil {
		return err
	}
	proj := v.camera.Projection()
	v.renderer.Begin()
	v.renderer.Draw(frame, &proj)
	return nil
}

// openDialog shows a native file dialog off the main thread. The choice is
// applied by pollOpened on the main thread.
func (v *Viewer) openDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Spine skeleton", "json", "skel").
			Filter("All Files", "*").
			Title("Open skeleton").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case v.opened <- path:
		default:
		}
	}()
}

func (v *Viewer) pollOpened() {
	var path string
	select {
	case path = <-v.opened:
	default:
		return
	}

	atlas := siblingAtlas(path)
	if _, err := os.Stat(atlas); err != nil {
		v.log.Error("no atlas next to skeleton", zap.String("skeleton", path), zap.String("atlas", atlas))
		return
	}

	prev := v.cfg.Skeleton
	v.cfg.Skeleton.Path, v.cfg.Skeleton.Atlas = path, atlas
	v.cfg.Skeleton.Animation, v.cfg.Skeleton.Skin = "", ""
	if !v.reload() {
		v.cfg.Skeleton = prev
		return
	}

	if v.stopWatcher != nil {
		v.stopWatcher()
		<-v.watchDone
		v.watcher, v.stopWatcher = nil, nil
	}
	if v.cfg.Watch.Enabled {
		if err := v.startWatcher(); err != nil {
			v.log.Warn("hot reload disabled", zap.Error(err))
		}
	}

	// Remember the skeleton for the next launch.
	if err := v.cfg.Save(); err != nil {
		v.log.Warn("failed to save config", zap.Error(err))
	}
}

// siblingAtlas returns the .atlas path sharing the skeleton's base name.
func siblingAtlas(skeleton string) string {
	return strings.TrimSuffix(skeleton, filepath.Ext(skeleton)) + ".atlas"
}

func (v *Viewer) saveScreenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	img, err := screenshot.FromGL(pixels, w, h)
	if err == nil {
		var name string
		if name, err = v.shots.Write(img); err == nil {
			v.log.Info("screenshot saved", zap.String("path", name))
			return
		}
	}
	v.log.Error("screenshot failed", zap.Error(err))
}

// Close frees everything in reverse order of creation.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.stopWatcher != nil {
		v.stopWatcher()
		<-v.watchDone
	}
	if v.inst != nil {
		v.inst.Dispose()
	}
	if v.data != nil {
		v.data.Dispose()
	}
	// Atlas disposal unloads page textures, so the GL context must
	// still exist.
	if v.atlas != nil {
		v.atlas.Dispose()
	}
	spinec.SetTextureLoader(nil)
	if v.audio != nil {
		v.audio.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
