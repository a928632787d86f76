package runner

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/camera"
	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/generator"
	"github.com/vovakirdan/split-horizon/internal/world"
)

// Projection tuning.
const (
	viewDistance  = 160.0 // furthest Z drawn ahead of the camera
	nearPlane     = 0.5
	gridStep      = 5.0
	verticalFOV   = 60.0 // degrees
	cellAspect    = 2.0  // terminal cells are about twice as tall as wide
	ridgeDistance = 600.0
	ridgeWidth    = 900.0
	ridgeHeight   = 60.0
	ridgeScale    = 120.0
)

// Visual characters for rendering
const (
	GridChar      = '·'
	RailChar      = '─'
	RidgeChar     = '^'
	CeilRidgeChar = 'v'
	GroundBlock   = '█'
	CeilingBlock  = '▓'
	RareBlock     = '▒'
	PlayerChar    = '◆'
	FragmentChar  = '*'
)

// projector maps world points to screen cells through a camera pose.
type projector struct {
	pose  camera.Pose
	w, h  int
	focal float64
}

func newProjector(pose camera.Pose, w, h int) projector {
	half := mgl64.DegToRad(verticalFOV / 2)
	return projector{
		pose:  pose,
		w:     w,
		h:     h,
		focal: float64(h) / 2 / math.Tan(half),
	}
}

// project returns the screen cell of p and its view depth.
// ok is false for points behind the near plane.
func (pr projector) project(p mgl64.Vec3) (x, y int, depth float64, ok bool) {
	v := pr.pose.ToView(p)
	if v.Z() <= nearPlane {
		return 0, 0, 0, false
	}
	sx := float64(pr.w)/2 + v.X()/v.Z()*pr.focal*cellAspect
	sy := float64(pr.h)/2 - v.Y()/v.Z()*pr.focal
	limit := float64(4 * (pr.w + pr.h))
	if math.Abs(sx) > limit || math.Abs(sy) > limit {
		return 0, 0, 0, false
	}
	return int(math.Round(sx)), int(math.Round(sy)), v.Z(), true
}

// projectBox returns the screen rectangle covering every corner of b.
func (pr projector) projectBox(b core.Box) (core.Rect, bool) {
	lo, hi := b.Min(), b.Max()
	minX, minY := math.MaxInt32, math.MaxInt32
	maxX, maxY := math.MinInt32, math.MinInt32
	for i := 0; i < 8; i++ {
		c := mgl64.Vec3{lo.X(), lo.Y(), lo.Z()}
		if i&1 != 0 {
			c[0] = hi.X()
		}
		if i&2 != 0 {
			c[1] = hi.Y()
		}
		if i&4 != 0 {
			c[2] = hi.Z()
		}
		x, y, _, ok := pr.project(c)
		if !ok {
			return core.Rect{}, false
		}
		minX, maxX = core.Min(minX, x), core.Max(maxX, x)
		minY, maxY = core.Min(minY, y), core.Max(maxY, y)
	}
	return core.NewRect(minX, minY, maxX-minX+1, maxY-minY+1), true
}

// renderer holds the static scenery of a level.
type renderer struct {
	noise   *perlin.Perlin
	ground  generator.BoundsWindow
	ceiling generator.BoundsWindow
}

func newRenderer(seed int64, ground, ceiling generator.Platform) *renderer {
	return &renderer{
		noise:   perlin.NewPerlin(2, 2, 3, seed),
		ground:  generator.GroundBounds(ground),
		ceiling: generator.CeilingBounds(ceiling),
	}
}

// ridge returns the backdrop height at world x, in [0, ridgeHeight].
func (r *renderer) ridge(x float64) float64 {
	n := (r.noise.Noise2D(x/ridgeScale, 0) + 1) / 2
	return core.ClampF(n, 0, 1) * ridgeHeight
}

// drawBackdrop draws a distant mountain ridge rising from the ground plane
// and its mirror hanging from the ceiling plane.
func (r *renderer) drawBackdrop(dst *core.Screen, pr projector) {
	z := pr.pose.Position.Z() + ridgeDistance
	samples := dst.Width() * 2
	if samples <= 0 {
		return
	}
	step := 2 * ridgeWidth / float64(samples)
	for i := 0; i <= samples; i++ {
		x := -ridgeWidth + float64(i)*step
		h := r.ridge(x)
		if sx, sy, _, ok := pr.project(mgl64.Vec3{x, r.ground.SurfaceY + h, z}); ok {
			dst.SetColor(sx, sy, RidgeChar, core.ColorBlue)
		}
		if sx, sy, _, ok := pr.project(mgl64.Vec3{x, r.ceiling.SurfaceY - h, z}); ok {
			dst.SetColor(sx, sy, CeilRidgeChar, core.ColorMagenta)
		}
	}
}

// drawSurfaces draws cross lines and edge rails on the ground and ceiling.
func (r *renderer) drawSurfaces(dst *core.Screen, pr projector) {
	camZ := pr.pose.Position.Z()
	for _, b := range []generator.BoundsWindow{r.ground, r.ceiling} {
		zNear := math.Max(b.ZMin, camZ+nearPlane+1)
		zFar := math.Min(b.ZMax, camZ+viewDistance)
		if zNear >= zFar {
			continue
		}
		first := math.Ceil(zNear/gridStep) * gridStep
		for z := first; z <= zFar; z += gridStep {
			drawLine(dst, pr,
				mgl64.Vec3{b.XMin, b.SurfaceY, z},
				mgl64.Vec3{b.XMax, b.SurfaceY, z},
				GridChar, core.ColorGray)
		}
		for _, x := range []float64{b.XMin, b.XMax} {
			drawLine(dst, pr,
				mgl64.Vec3{x, b.SurfaceY, zNear},
				mgl64.Vec3{x, b.SurfaceY, zFar},
				RailChar, core.ColorWhite)
		}
	}
}

// lineSamples is how many world-space pieces a line is cut into, so the part
// in front of the camera is still drawn when one end is behind it.
const lineSamples = 32

// drawLine plots the visible pieces of the world segment a-b.
func drawLine(dst *core.Screen, pr projector, a, b mgl64.Vec3, ch rune, c core.Color) {
	prev := a
	for i := 1; i <= lineSamples; i++ {
		next := a.Add(b.Sub(a).Mul(float64(i) / lineSamples))
		x0, y0, _, ok0 := pr.project(prev)
		x1, y1, _, ok1 := pr.project(next)
		if ok0 && ok1 {
			plotSegment(dst, x0, y0, x1, y1, ch, c)
		}
		prev = next
	}
}

// plotSegment draws a straight run of cells between two screen points.
func plotSegment(dst *core.Screen, x0, y0, x1, y1 int, ch rune, c core.Color) {
	dx, dy := x1-x0, y1-y0
	steps := core.Max(abs(dx), abs(dy))
	if steps == 0 {
		dst.SetColor(x0, y0, ch, c)
		return
	}
	for i := 0; i <= steps; i++ {
		dst.SetColor(x0+dx*i/steps, y0+dy*i/steps, ch, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// fillRect fills the part of r that lies on screen.
func fillRect(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0 := core.Clamp(r.X, 0, dst.Width())
	x1 := core.Clamp(r.Right(), 0, dst.Width())
	y0 := core.Clamp(r.Y, 0, dst.Height())
	y1 := core.Clamp(r.Bottom(), 0, dst.Height())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(x, y, ch, c)
		}
	}
}

// obstacleLook picks the glyph and color of an obstacle.
func obstacleLook(o world.Obstacle) (rune, core.Color) {
	switch {
	case o.Rare:
		return RareBlock, core.ColorBrightMagenta
	case o.Surface == generator.SurfaceCeiling:
		return CeilingBlock, core.ColorYellow
	case o.Archetype == "cube":
		return GroundBlock, core.ColorOrange
	default:
		return GroundBlock, core.ColorRed
	}
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() <= 0 || dst.Height() <= 0 || g.view == nil {
		return
	}

	pr := newProjector(g.cam.Pose(), dst.Width(), dst.Height())
	g.view.drawBackdrop(dst, pr)
	g.view.drawSurfaces(dst, pr)
	g.drawObstacles(dst, pr)
	g.drawPlayer(dst, pr)
	g.drawDebris(dst, pr)
	g.drawHUD(dst)

	switch {
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case g.manager.IsLevelComplete() && !g.manager.Fade().Active():
		g.drawCenteredMessage(dst, "LEVEL COMPLETE", "Press Enter to continue")
	case g.manager.GameOver() && !g.manager.Fade().Active():
		g.drawCenteredMessage(dst, "GAME OVER", "Restarting...")
	}

	g.drawFade(dst)
}

// drawObstacles draws visible obstacles far to near.
func (g *Game) drawObstacles(dst *core.Screen, pr projector) {
	camZ := pr.pose.Position.Z()
	visible := g.store.Between(camZ, camZ+viewDistance)
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Position.Z() > visible[j].Position.Z()
	})
	for _, o := range visible {
		r, ok := pr.projectBox(o.Bounds())
		if !ok {
			continue
		}
		ch, c := obstacleLook(o)
		fillRect(dst, r, ch, c)
	}
}

// drawPlayer draws the player box if it still exists.
func (g *Game) drawPlayer(dst *core.Screen, pr projector) {
	if !g.player.Present() {
		return
	}
	r, ok := pr.projectBox(g.body.Bounds())
	if !ok {
		return
	}
	c := core.ColorCyan
	if g.controller.IsFlipping() {
		c = core.ColorBrightCyan
	}
	fillRect(dst, r, PlayerChar, c)
}

// drawDebris draws fracture fragments.
func (g *Game) drawDebris(dst *core.Screen, pr projector) {
	for _, f := range g.debris.Fragments() {
		if x, y, _, ok := pr.project(f.Position); ok {
			dst.SetColor(x, y, FragmentChar, core.ColorOrange)
		}
	}
}

// drawHUD draws the level, score, gravity and progress readouts.
func (g *Game) drawHUD(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	left := fmt.Sprintf(" Level %d: %s ", g.LevelNumber(), g.Title())
	dst.DrawTextColor(0, 0, left, core.ColorWhite)

	if text := g.progress.Text(); text != "" {
		score := fmt.Sprintf(" %s ", text)
		dst.DrawTextColor(w-len(score), 0, score, core.ColorGreen)
	}

	status := "GRAVITY DOWN"
	if g.controller.GravityFlipped() {
		status = "GRAVITY UP"
	}
	if g.controller.IsFlipping() {
		status = fmt.Sprintf("FLIP %3d%%", int(g.controller.FlipProgress()*100))
	}
	if g.cheats.Invincible() {
		status += "  INVINCIBLE"
	}
	dst.DrawTextColor(1, 1, status, core.ColorCyan)

	barW := w - 10
	if barW < 4 || h < 3 {
		return
	}
	filled := int(g.progress.Fraction() * float64(barW))
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", barW-filled) + "]"
	dst.DrawTextColor(1, h-1, bar, core.ColorGreen)
	dst.DrawTextColor(barW+3, h-1, fmt.Sprintf("%3d%%", int(g.progress.Fraction()*100)), core.ColorGreen)
}

// drawFade dims the screen during level transitions and shows the level title.
func (g *Game) drawFade(dst *core.Screen) {
	fade := g.manager.Fade()
	if !fade.Active() && fade.Alpha() <= 0 {
		return
	}
	dst.Dim(fade.Alpha())
	if fade.Alpha() > 0.25 && fade.Title != "" {
		dst.DrawTextCentered(dst.Height()/2, fade.Title)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// playerVisible reports whether the player projects onto the screen.
func (g *Game) playerVisible(w, h int) bool {
	b := g.player.Get()
	if opt.IsNone(b) {
		return false
	}
	pr := newProjector(g.cam.Pose(), w, h)
	x, y, _, ok := pr.project(b.Value.Position())
	return ok && x >= 0 && x < w && y >= 0 && y < h
}
