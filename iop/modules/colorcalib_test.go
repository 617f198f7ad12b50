package modules

import (
	"testing"

	"github.com/rawforge/pixelpipe/chroma"
	"github.com/rawforge/pixelpipe/iop"
	"github.com/rawforge/pixelpipe/pixel"
)

func TestColorcalibDegradesToIdentityWhenCATDenied(t *testing.T) {
	coord := chroma.New()
	wb := NewWhitebalance()
	wbPiece := &iop.Piece{Module: wb, Params: wb.Init(), Chroma: coord, IopOrder: OrderWhitebalance}
	if err := wb.CommitParams(wbPiece); err != nil {
		t.Fatalf("whitebalance CommitParams: %v", err)
	}

	cc := NewColorcalib()
	ccPiece := &iop.Piece{Module: cc, Params: cc.Init(), Chroma: coord, IopOrder: OrderColorcalib}
	if err := cc.CommitParams(ccPiece); err != nil {
		t.Fatalf("colorcalib CommitParams: %v", err)
	}

	dsc := pixel.ForRGB()
	in, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	in.Data[0], in.Data[1], in.Data[2], in.Data[3] = 0.1, 0.2, 0.3, 1
	out, err := pixel.NewBuffer(dsc, 1, 1)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	roi := pixel.ROI{Width: 1, Height: 1}
	if err := cc.Process(ccPiece, in, out, roi, roi); err != nil {
		t.Fatalf("Process: %v", err)
	}
	for i := 0; i < 4; i++ {
		if out.Data[i] != in.Data[i] {
			t.Errorf("denied colorcalib should pass samples through unchanged, channel %d: got %v want %v", i, out.Data[i], in.Data[i])
		}
	}
}

func TestColorcalibAppliesCATWhenWhitebalanceAbsent(t *testing.T) {
	coord := chroma.New()
	cc := NewColorcalib()
	params := cc.Init()
	putF32(params, 0, 1) // strength=1
	ccPiece := &iop.Piece{Module: cc, Params: params, Chroma: coord, IopOrder: OrderColorcalib}
	if err := cc.CommitParams(ccPiece); err != nil {
		t.Fatalf("colorcalib CommitParams: %v", err)
	}

	claimant, held := coord.Claimed()
	if !held || claimant.PieceID != "colorcalib#0" {
		t.Fatalf("colorcalib should hold the CAT claim absent a competing whitebalance, got %+v held=%v", claimant, held)
	}
	if !cc.(*Colorcalib).active {
		t.Error("colorcalib holding the CAT claim should be active and apply its transform")
	}
}

func TestColorcalibNilChromaStaysInactive(t *testing.T) {
	cc := NewColorcalib()
	p := &iop.Piece{Module: cc, Params: cc.Init()}
	if err := cc.CommitParams(p); err != nil {
		t.Fatalf("CommitParams: %v", err)
	}
	if cc.(*Colorcalib).active {
		t.Error("colorcalib with nil Chroma must never become active")
	}
}
