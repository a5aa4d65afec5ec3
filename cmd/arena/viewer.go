package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/ashfall/config"
	"github.com/automoto/ashfall/core"
	"github.com/automoto/ashfall/shared/chance"
	"github.com/automoto/ashfall/shared/gamemath"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

var palette = map[config.ColorCategory]color.RGBA{
	config.ColorBlood: colornames.Crimson,
	config.ColorSpark: colornames.Lightyellow,
	config.ColorGold:  colornames.Gold,
	config.ColorEmber: colornames.Orangered,
	config.ColorGhost: colornames.Lightskyblue,
	config.ColorHeal:  colornames.Lightgreen,
}

var kindColors = map[string]color.RGBA{
	"grunt": colornames.Indianred,
	"tank":  colornames.Slategray,
	"agile": colornames.Mediumpurple,
	"boss":  colornames.Darkred,
}

type particle struct {
	pos  gamemath.Vec3
	vel  gamemath.Vec3
	life float64
	clr  color.RGBA
}

type ring struct {
	pos  gamemath.Vec3
	life float64
	max  float64
	clr  color.RGBA
}

// viewer is a top-down ebiten window onto a session. It is also the
// session's presenter, turning feedback requests into particles, shake and
// a hit-stop flash.
type viewer struct {
	s      *session
	log    *zap.Logger
	width  int
	height int
	ppu    float64
	dt     float64
	src    chance.Source

	particles []particle
	rings     []ring
	shake     float64
	flash     float64
	banner    string
	bannerFor float64
}

func newViewer(width, height int, ppu float64, tickRate int, log *zap.Logger, src chance.Source) *viewer {
	return &viewer{
		log:    log,
		width:  width,
		height: height,
		ppu:    ppu,
		dt:     1 / float64(tickRate),
		src:    src,
	}
}

func (v *viewer) RequestHitEffect(pos gamemath.Vec3, severity config.Severity) {
	clr := colornames.White
	if severity >= config.SeverityCritical {
		clr = colornames.Gold
	}
	v.rings = append(v.rings, ring{pos: pos, life: 0.25, max: 0.25, clr: clr})
}

func (v *viewer) RequestParticleBurst(pos gamemath.Vec3, category config.ColorCategory, count int) {
	clr, ok := palette[category]
	if !ok {
		clr = colornames.White
	}
	for i := 0; i < count; i++ {
		dir := gamemath.FacingVector(chance.Range(v.src, 0, 360))
		v.particles = append(v.particles, particle{
			pos:  pos,
			vel:  dir.Scale(chance.Range(v.src, 6, 20)),
			life: chance.Range(v.src, 0.2, 0.5),
			clr:  clr,
		})
	}
}

func (v *viewer) RequestSound(sound config.SoundID) {
	v.log.Debug("sound", zap.Int("id", int(sound)))
}

func (v *viewer) RequestScreenShake(magnitude float64) {
	v.shake = math.Max(v.shake, magnitude)
}

func (v *viewer) RequestHitStop(duration float64) {
	v.flash = math.Max(v.flash, duration)
}

func (v *viewer) EnemyDefeated(ev core.DefeatEvent) {
	v.banner = fmt.Sprintf("%s defeated  +%d", ev.Kind, ev.Reward)
	v.bannerFor = 1.5
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !v.s.step(v.dt, v.readIntent()) {
		return ebiten.Termination
	}

	alive := v.particles[:0]
	for _, p := range v.particles {
		p.life -= v.dt
		if p.life <= 0 {
			continue
		}
		p.pos = p.pos.Add(p.vel.Scale(v.dt))
		alive = append(alive, p)
	}
	v.particles = alive

	rings := v.rings[:0]
	for _, r := range v.rings {
		r.life -= v.dt
		if r.life > 0 {
			rings = append(rings, r)
		}
	}
	v.rings = rings

	v.shake = gamemath.CountDown(v.shake, v.dt*1.5)
	v.flash = gamemath.CountDown(v.flash, v.dt)
	v.bannerFor = gamemath.CountDown(v.bannerFor, v.dt)
	return nil
}

// readIntent maps keyboard and mouse to an intent. WASD is screen
// relative and is turned into aim-relative movement here.
func (v *viewer) readIntent() core.Intent {
	var in core.Intent
	state := v.s.world.State()

	px, py := v.toScreen(state.Player.Position)
	cx, cy := ebiten.CursorPosition()
	aimDir := gamemath.Vec3{X: float64(cx) - px, Z: py - float64(cy)}
	in.AimYaw = state.Player.Facing
	if aimDir.FlatLength() > 4 {
		in.AimYaw = gamemath.YawOf(aimDir)
	}

	var screen gamemath.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		screen.Z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		screen.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		screen.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		screen.X--
	}
	if screen.FlatLength() > 0 {
		screen = screen.Normalize(gamemath.Zero)
		forward := gamemath.FacingVector(in.AimYaw)
		in.Move = gamemath.Vec3{X: screen.Dot(gamemath.RightOf(forward)), Z: screen.Dot(forward)}
	}

	in.Buttons[config.ActionAttack] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeyJ)
	in.Buttons[config.ActionBlock] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsKeyPressed(ebiten.KeyK)
	in.Buttons[config.ActionParry] = ebiten.IsKeyPressed(ebiten.KeyQ)
	in.Buttons[config.ActionDodge] = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.Buttons[config.ActionHeal] = ebiten.IsKeyPressed(ebiten.KeyE)
	in.Buttons[config.ActionJump] = ebiten.IsKeyPressed(ebiten.KeyF)
	in.Buttons[config.ActionSprint] = ebiten.IsKeyPressed(ebiten.KeyShift)
	in.Buttons[config.ActionLockOn] = ebiten.IsKeyPressed(ebiten.KeyTab) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		in.Flick = -1
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		in.Flick = 1
	}
	return in
}

func (v *viewer) offset() (float64, float64) {
	if v.shake <= 0 {
		return 0, 0
	}
	mag := v.shake * v.ppu * 2
	return chance.Range(v.src, -mag, mag), chance.Range(v.src, -mag, mag)
}

func (v *viewer) toScreen(p gamemath.Vec3) (float64, float64) {
	return float64(v.width)/2 + p.X*v.ppu, float64(v.height)/2 - p.Z*v.ppu
}

func (v *viewer) Draw(screen *ebiten.Image) {
	state := v.s.world.State()
	ox, oy := v.offset()
	at := func(p gamemath.Vec3) (float32, float32) {
		x, y := v.toScreen(p)
		return float32(x + ox), float32(y + oy)
	}
	ppu := float32(v.ppu)

	screen.Fill(colornames.Black)
	if v.flash > 0 {
		screen.Fill(color.RGBA{R: 40, G: 30, B: 30, A: 255})
	}

	half := float32(state.HalfExtent) * ppu
	cx, cy := at(gamemath.Zero)
	vector.StrokeRect(screen, cx-half, cy-half, half*2, half*2, 2, colornames.Dimgray, true)

	for _, ob := range state.Obstacles {
		x, y := at(ob.Position)
		vector.DrawFilledCircle(screen, x, y, float32(ob.Radius)*ppu, colornames.Darkslategray, true)
	}

	for _, e := range state.Enemies {
		clr, ok := kindColors[e.Kind]
		if !ok {
			clr = colornames.Orange
		}
		if e.Defeated {
			clr = colornames.Dimgray
		}
		v.drawActor(screen, at, e.ActorState, clr)
		if !e.Defeated {
			x, y := at(e.Position)
			ebitenutil.DebugPrintAt(screen, string(e.AI), int(x)-16, int(y)-int(float32(e.Radius)*ppu)-28)
		}
	}

	if state.HasPlayer {
		clr := colornames.Steelblue
		if state.Player.Invulnerable {
			clr = colornames.Lightskyblue
		}
		v.drawActor(screen, at, state.Player.ActorState, clr)
		if state.Player.LockTarget >= 0 && state.Player.LockTarget < len(state.Enemies) {
			t := state.Enemies[state.Player.LockTarget]
			x, y := at(t.Position)
			vector.StrokeCircle(screen, x, y, float32(t.Radius)*ppu+6, 2, colornames.Yellow, true)
		}
	}

	for _, r := range v.rings {
		x, y := at(r.pos)
		grow := float32(1 - r.life/r.max)
		vector.StrokeCircle(screen, x, y, 4+grow*4*ppu, 2, r.clr, true)
	}
	for _, p := range v.particles {
		x, y := at(p.pos)
		vector.DrawFilledRect(screen, x-1, y-1, 3, 3, p.clr, false)
	}

	v.drawHUD(screen, state)
}

func (v *viewer) drawActor(screen *ebiten.Image, at func(gamemath.Vec3) (float32, float32), a core.ActorState, clr color.RGBA) {
	ppu := float32(v.ppu)
	x, y := at(a.Position)
	r := float32(a.Radius) * ppu
	vector.DrawFilledCircle(screen, x, y, r, clr, true)

	face := gamemath.FacingVector(a.Facing)
	vector.StrokeLine(screen, x, y, x+float32(face.X)*r*1.6, y-float32(face.Z)*r*1.6, 2, colornames.White, true)

	if a.Action == config.ActionAttacking {
		swing := gamemath.FacingVector(a.Facing + a.SwingYaw)
		reach := r * 2.4
		vector.StrokeLine(screen, x, y, x+float32(swing.X)*reach, y-float32(swing.Z)*reach, 3, colornames.Silver, true)
	}
	if a.Action == config.ActionBlocking || a.Action == config.ActionParrying {
		vector.StrokeCircle(screen, x, y, r+3, 2, colornames.Khaki, true)
	}

	if a.MaxHealth > 0 {
		w := r * 2
		frac := float32(a.Health) / float32(a.MaxHealth)
		vector.DrawFilledRect(screen, x-r, y-r-10, w, 4, colornames.Darkred, false)
		vector.DrawFilledRect(screen, x-r, y-r-10, w*frac, 4, colornames.Limegreen, false)
	}
	if a.MaxPoise > 0 {
		frac := float32(a.Poise / a.MaxPoise)
		vector.DrawFilledRect(screen, x-r, y-r-5, r*2*frac, 2, colornames.Gold, false)
	}
}

func (v *viewer) drawHUD(screen *ebiten.Image, state core.State) {
	p := state.Player
	best := v.s.records.Best()
	lines := []string{
		fmt.Sprintf("wave %d   enemies %d   reward %d   best wave %d", state.Wave+1, state.Alive(), v.s.score.reward, best.BestWave),
		fmt.Sprintf("hp %d/%d   stamina %.0f/%.0f   poise %.0f/%.0f   flasks %d",
			p.Health, p.MaxHealth, p.Stamina, p.MaxStamina, p.Poise, p.MaxPoise, p.Flasks),
		fmt.Sprintf("action %s   %s", p.Action, p.Attack),
		windowLine(p),
		"WASD move  LMB/J attack (hold: heavy)  RMB/K block  Q parry  Space dodge  E heal  Tab lock  Z/C switch",
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8, 8+i*16)
	}
	if v.bannerFor > 0 {
		ebitenutil.DebugPrintAt(screen, v.banner, v.width/2-60, 72)
	}
	if p.Dead {
		ebitenutil.DebugPrintAt(screen, "YOU DIED", v.width/2-28, v.height/2-40)
	}
}

// windowLine shows the perfect-dodge slowdown and riposte bonus while open.
func windowLine(p core.PlayerState) string {
	line := ""
	if p.PerfectDodgeTimer > 0 {
		line += fmt.Sprintf("PERFECT DODGE %.2fs   ", p.PerfectDodgeTimer)
	}
	if p.RiposteTimer > 0 {
		line += fmt.Sprintf("RIPOSTE %.2fs", p.RiposteTimer)
	}
	return line
}

func (v *viewer) Layout(int, int) (int, int) {
	return v.width, v.height
}
