package pipeline_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/rawforge/pixelpipe/internal/testlog"
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/iop/modules"
	"github.com/rawforge/pixelpipe/params"
	"github.com/rawforge/pixelpipe/pipeline"
	"github.com/rawforge/pixelpipe/pipeline/config"
	"github.com/rawforge/pixelpipe/pixel"
)

func putF32(buf []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
}

func testImage(t *testing.T, w, h int) *pixel.Image {
	t.Helper()
	pix := make([]byte, w*h*2)
	for i := 0; i < w*h; i++ {
		v := uint16(20000 + (i % 1000))
		pix[i*2] = byte(v)
		pix[i*2+1] = byte(v >> 8)
	}
	return &pixel.Image{
		Width:          w,
		Height:         h,
		BytesPerSample: 2,
		Filters:        pixel.Filters{Kind: pixel.FilterBayer},
		RawWhitePoint:  65535,
		AsShot:         [4]float32{1, 1, 1, 1},
		CameraToXYZ:    [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
		Pix:            pix,
	}
}

func newTestPipeline(t *testing.T, w, h int) *pipeline.Pipeline {
	t.Helper()
	catalog := iop.NewCatalog()
	registry := params.NewRegistry()
	upgrades := params.NewUpgrades()
	if err := modules.RegisterAll(catalog, registry); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	if err := modules.RegisterUpgrades(upgrades); err != nil {
		t.Fatalf("RegisterUpgrades: %v", err)
	}

	cfg := config.Config{Logger: testlog.New(t)}
	img := testImage(t, w, h)
	p, err := pipeline.Create(img, cfg, catalog, registry, upgrades, modules.DefaultEnabled)
	if err != nil {
		t.Fatalf("pipeline.Create: %v", err)
	}
	return p
}

func TestRenderProducesFullExtentResult(t *testing.T) {
	p := newTestPipeline(t, 16, 16)
	result, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result.Width != 16 || result.Height != 16 {
		t.Fatalf("result extent = %dx%d, want 16x16", result.Width, result.Height)
	}
	if result.Stride != 16*4 {
		t.Errorf("stride = %d, want %d", result.Stride, 16*4)
	}
	if len(result.Pixels) != result.Stride*result.Height {
		t.Errorf("len(Pixels) = %d, want %d", len(result.Pixels), result.Stride*result.Height)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	p := newTestPipeline(t, 16, 16)
	r1, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render (1): %v", err)
	}
	r2, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render (2): %v", err)
	}
	if len(r1.Pixels) != len(r2.Pixels) {
		t.Fatalf("pixel length differs between identical renders: %d vs %d", len(r1.Pixels), len(r2.Pixels))
	}
	for i := range r1.Pixels {
		if r1.Pixels[i] != r2.Pixels[i] {
			t.Fatalf("pixel %d differs between identical renders: %d vs %d", i, r1.Pixels[i], r2.Pixels[i])
		}
	}
}

func TestRenderRegionWidthHeightStrideInvariant(t *testing.T) {
	p := newTestPipeline(t, 32, 32)
	result, err := p.RenderRegion(4, 4, 10, 6, 1)
	if err != nil {
		t.Fatalf("RenderRegion: %v", err)
	}
	if result.Width != 10 || result.Height != 6 {
		t.Fatalf("result extent = %dx%d, want 10x6", result.Width, result.Height)
	}
	if result.Stride != 10*4 {
		t.Errorf("stride = %d, want %d", result.Stride, 10*4)
	}
}

func TestRenderRejectsNonPositiveScale(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	if _, err := p.Render(0); err == nil {
		t.Error("Render(0) should reject a non-positive scale")
	}
	if _, err := p.Render(-1); err == nil {
		t.Error("Render(-1) should reject a non-positive scale")
	}
}

func TestRenderRegionEmptyROIYieldsEmptyResult(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	result, err := p.RenderRegion(0, 0, 0, 0, 1)
	if err != nil {
		t.Fatalf("RenderRegion: %v", err)
	}
	if result.Width != 0 || result.Height != 0 || len(result.Pixels) != 0 {
		t.Errorf("empty ROI should render to an empty, non-nil result, got %+v", result)
	}
}

func TestDisablingColorinChangesOutput(t *testing.T) {
	p := newTestPipeline(t, 16, 16)
	enabled, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render (enabled): %v", err)
	}
	if err := p.EnableModule("colorin", false); err != nil {
		t.Fatalf("EnableModule: %v", err)
	}
	disabled, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render (disabled): %v", err)
	}
	same := len(enabled.Pixels) == len(disabled.Pixels)
	if same {
		same = true
		for i := range enabled.Pixels {
			if enabled.Pixels[i] != disabled.Pixels[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("disabling colorin should skip its camera-to-working matrix and change the rendered output")
	}
}

func TestSetParamFloatAffectsSubsequentRender(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	base, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render (base): %v", err)
	}
	if err := p.SetParamFloat("exposure", "ev", 4); err != nil {
		t.Fatalf("SetParamFloat: %v", err)
	}
	boosted, err := p.Render(1)
	if err != nil {
		t.Fatalf("Render (boosted): %v", err)
	}
	same := true
	for i := range base.Pixels {
		if base.Pixels[i] != boosted.Pixels[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("a +4EV exposure change should alter the rendered output")
	}
}

func TestGetParamFloatRoundTrips(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	if err := p.SetParamFloat("exposure", "ev", 2.5); err != nil {
		t.Fatalf("SetParamFloat: %v", err)
	}
	got, err := p.GetParamFloat("exposure", "ev")
	if err != nil {
		t.Fatalf("GetParamFloat: %v", err)
	}
	if got != 2.5 {
		t.Errorf("GetParamFloat(ev) = %v, want 2.5", got)
	}
}

func TestRestoreParamsAtCurrentVersionAppliesBlobUnchanged(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	if err := p.SetParamFloat("exposure", "ev", 1); err != nil {
		t.Fatalf("SetParamFloat: %v", err)
	}
	before, err := p.GetParamFloat("exposure", "ev")
	if err != nil {
		t.Fatalf("GetParamFloat: %v", err)
	}
	data := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if err := p.RestoreParams("exposure", data, 1); err != nil {
		t.Fatalf("RestoreParams: %v", err)
	}
	after, err := p.GetParamFloat("exposure", "ev")
	if err != nil {
		t.Fatalf("GetParamFloat after restore: %v", err)
	}
	if before == after {
		t.Fatal("test setup invalid: restore should have replaced the committed parameters")
	}
	if after != 0 {
		t.Errorf("restored ev = %v, want 0 (the zeroed blob's value)", after)
	}
}

func TestRestoreParamsUpgradesRawprepareFromV1(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	v1 := make([]byte, 8) // black float32, white float32 (pre-per-channel layout).
	putF32(v1, 0, 0.08)
	putF32(v1, 4, 0.9)
	if err := p.RestoreParams("rawprepare", v1, 1); err != nil {
		t.Fatalf("RestoreParams: %v", err)
	}
	for _, name := range []string{"black_0", "black_1", "black_2", "black_3"} {
		got, err := p.GetParamFloat("rawprepare", name)
		if err != nil {
			t.Fatalf("GetParamFloat(%q): %v", name, err)
		}
		if got != float64(float32(0.08)) {
			t.Errorf("%s = %v, want 0.08 (replicated from the v1 scalar black level)", name, got)
		}
	}
	white, err := p.GetParamFloat("rawprepare", "white")
	if err != nil {
		t.Fatalf("GetParamFloat(white): %v", err)
	}
	if white != float64(float32(0.9)) {
		t.Errorf("white = %v, want 0.9", white)
	}
}

func TestRestoreParamsUnknownOpFails(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	if err := p.RestoreParams("nonexistent", nil, 1); err == nil {
		t.Error("RestoreParams on an unknown op should fail")
	}
}

func TestFindPieceUnknownOpFails(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	if _, err := p.GetParamFloat("nonexistent", "x"); err == nil {
		t.Error("GetParamFloat on an unknown op should fail")
	}
}

func TestFreeReleasesPieces(t *testing.T) {
	p := newTestPipeline(t, 8, 8)
	if err := p.Free(); err != nil {
		t.Fatalf("Free: %v", err)
	}
}
