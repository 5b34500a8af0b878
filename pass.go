package composite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gekko3d/composite/deferred/rt/app"
	"github.com/gekko3d/composite/deferred/rt/core"
	"github.com/gekko3d/composite/deferred/rt/shade"
	"github.com/gekko3d/composite/deferred/rt/texture"
)

var ErrMissingInput = errors.New("missing composite input")

// Inputs are the screen-sized targets the pass reads. The depth image and
// the attribute targets define the output size; the light buffers may be any
// size and are resampled when they differ.
type Inputs struct {
	Attributes [4]*texture.Image
	Depth      *texture.Image
	LightRT    [2]*texture.Image // optional
}

func (in *Inputs) validate() error {
	if in.Depth == nil || in.Depth.Width == 0 || in.Depth.Height == 0 {
		return fmt.Errorf("depth: %w", ErrMissingInput)
	}
	for i, rt := range in.Attributes {
		if rt == nil {
			return fmt.Errorf("rt%d: %w", i, ErrMissingInput)
		}
		if err := in.Depth.CheckSize(fmt.Sprintf("rt%d", i), rt); err != nil {
			return err
		}
	}
	return nil
}

// Pass composites one frame. It never writes to its inputs, so one Pass can
// be run repeatedly.
type Pass struct {
	inputs   Inputs
	frame    *shade.Frame
	settings Settings
	logger   Logger
	profiler *app.Profiler
}

func NewPass(inputs Inputs, frame *shade.Frame, settings Settings, logger Logger) (*Pass, error) {
	if err := inputs.validate(); err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, fmt.Errorf("frame: %w", ErrMissingInput)
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Pass{
		inputs:   inputs,
		frame:    frame,
		settings: settings,
		logger:   logger,
		profiler: app.NewProfiler(),
	}, nil
}

func (p *Pass) Profiler() *app.Profiler { return p.profiler }

// SetProfiler lets a caller collect the load and encode scopes alongside
// the shade scope.
func (p *Pass) SetProfiler(profiler *app.Profiler) {
	if profiler != nil {
		p.profiler = profiler
	}
}

func (p *Pass) Settings() Settings { return p.settings }

// Run shades every pixel into a new image. Rows are spread over the
// configured workers; cancellation is checked between rows.
func (p *Pass) Run(ctx context.Context) (*texture.Image, error) {
	log := RunLogger(p.logger, uuid.New())
	width, height := p.inputs.Depth.Width, p.inputs.Depth.Height
	out := texture.NewImage(width, height)
	opts := p.settings.Shade
	workers := p.settings.workers()
	if workers > height {
		workers = height
	}

	log.Debugf("%dx%d mode=%s workers=%d", width, height, opts.Mode, workers)

	start := time.Now()
	p.profiler.BeginScope("shade")

	rows := make(chan int, workers*4)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				p.shadeRow(out, y, &opts)
			}
		}()
	}

	var err error
feed:
	for y := 0; y < height; y++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case rows <- y:
		}
	}
	close(rows)
	wg.Wait()
	p.profiler.EndScope("shade")

	if err != nil {
		log.Warnf("cancelled: %v", err)
		return nil, err
	}
	p.profiler.AddCount("pixels", width*height)
	log.Infof("shaded %dx%d mode=%s in %s", width, height, opts.Mode, time.Since(start))
	return out, nil
}

func (p *Pass) shadeRow(out *texture.Image, y int, opts *shade.Options) {
	width, height := out.Width, out.Height
	row := out.Row(y)
	var frag shade.Fragment
	for x := 0; x < width; x++ {
		frag.UV = shade.TexCoord(x, y, width, height)
		frag.Depth = p.inputs.Depth.At(x, y).X()
		frag.Attributes = core.Attributes{
			RT0: p.inputs.Attributes[0].At(x, y),
			RT1: p.inputs.Attributes[1].At(x, y),
			RT2: p.inputs.Attributes[2].At(x, y),
			RT3: p.inputs.Attributes[3].At(x, y),
		}
		frag.LightRT0 = fetch(p.inputs.LightRT[0], x, y, width, height, frag.UV)
		frag.LightRT1 = fetch(p.inputs.LightRT[1], x, y, width, height, frag.UV)

		c := shade.Shade(&frag, p.frame, opts)
		copy(row[x*4:x*4+4], c[:])
	}
}

// fetch reads an optional buffer, resampling it when it is not screen sized.
func fetch(img *texture.Image, x, y, width, height int, uv mgl32.Vec2) mgl32.Vec4 {
	if img == nil {
		return mgl32.Vec4{}
	}
	if img.Width == width && img.Height == height {
		return img.At(x, y)
	}
	return img.Sample(uv)
}
