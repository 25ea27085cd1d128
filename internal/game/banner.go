package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/iburimskiy/flying-logo/internal/config"
	"github.com/iburimskiy/flying-logo/internal/scene"
	"github.com/iburimskiy/flying-logo/internal/timeline"
)

const (
	// bannerPixelSize is the em size the banner is rasterised at.
	bannerPixelSize = 96
	bannerPadding   = 8
	lineSpacing     = 1.2
)

// bannerImage is the banner text rasterised once in white so it can be
// tinted per frame.
type bannerImage struct {
	img           *ebiten.Image
	width, height float64
}

func newBannerImage(src *text.GoTextFaceSource, s string) *bannerImage {
	face := &text.GoTextFace{Source: src, Size: bannerPixelSize}
	spacing := bannerPixelSize * lineSpacing
	w, h := text.Measure(s, face, spacing)

	iw := int(math.Ceil(w)) + 2*bannerPadding
	ih := int(math.Ceil(h)) + 2*bannerPadding
	img := ebiten.NewImage(iw, ih)

	op := &text.DrawOptions{}
	op.LineSpacing = spacing
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(float64(iw)/2, bannerPadding)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(img, s, face, op)

	return &bannerImage{img: img, width: float64(iw), height: float64(ih)}
}

// worldPerPixel converts banner image pixels to world units.
func worldPerPixel(size float64) float64 {
	return size / bannerPixelSize
}

// drawBanner draws the extruded banner at the frame's pose. Back layers use
// the glow color, the front face the primary color.
func (g *game) drawBanner(screen *ebiten.Image) {
	if !g.frame.Visible || g.face == nil {
		return
	}
	if g.banner == nil {
		g.banner = newBannerImage(g.face, g.cfg.Font.Text)
	}

	pose := g.frame.Pose
	pulse := 0.0
	if g.player != nil {
		pulse = g.player.Level()
	}
	glow := brighten(g.frame.Glow, pulse*0.5)

	unit := worldPerPixel(g.cfg.Font.Size)
	depth := config.TextDepth * pose.Scale
	// Layers trail behind the face along the banner's own normal.
	normal := scene.Rotate(timeline.Vec3{Z: 1}, pose.Rotation)
	for i := g.extrusion; i >= 0; i-- {
		offset := depth * float64(i) / float64(g.extrusion)
		pos := timeline.Vec3{
			X: pose.Position.X - normal.X*offset,
			Y: pose.Position.Y - normal.Y*offset,
			Z: pose.Position.Z - normal.Z*offset,
		}
		x, y, scale, ok := g.scene.Camera.Project(pos)
		if !ok {
			continue
		}

		clr := glow
		if i == 0 {
			clr = g.frame.Primary
		}
		clr = fogBlend(clr, g.scene.Background, g.scene.Fog.Factor(g.scene.Camera.Depth(pos)))

		k := scale * pose.Scale * unit
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-g.banner.width/2, -g.banner.height/2)
		op.GeoM.Scale(k*math.Cos(pose.Rotation.Y), k*math.Cos(pose.Rotation.X))
		op.GeoM.Rotate(pose.Rotation.Z)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(clr)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.banner.img, op)
	}
}
