package ecs

import (
	"errors"
	"math"
	"testing"

	"github.com/CyberTea0X/triangles3/board"

	"github.com/yohamta/donburi"
)

// seqRand returns 0, 1, 2, ... modulo n.
type seqRand struct{ next int }

func (r *seqRand) IntN(n int) int {
	v := r.next % n
	r.next++
	return v
}

func newBoardWorld(t *testing.T, scale int) donburi.World {
	t.Helper()
	w := donburi.NewWorld()
	SpawnField(w, board.ComputeField(scale, board.Vec2{}, 400))
	return w
}

func TestSpawnFieldSingleEntity(t *testing.T) {
	w := donburi.NewWorld()
	a := SpawnField(w, board.ComputeField(5, board.Vec2{}, 100))
	b := SpawnField(w, board.ComputeField(8, board.Vec2{}, 100))
	if a.Entity() != b.Entity() {
		t.Error("second SpawnField should reuse the field entity")
	}
	_, f, ok := FieldEntry(w)
	if !ok {
		t.Fatal("FieldEntry: not found")
	}
	if f.Scale != 8 {
		t.Errorf("Scale = %d, want 8", f.Scale)
	}
}

func TestCalculateCellsWithoutField(t *testing.T) {
	w := donburi.NewWorld()
	if _, err := CalculateCells(w); !errors.Is(err, ErrNoField) {
		t.Errorf("CalculateCells = %v, want ErrNoField", err)
	}
}

func TestCalculateCellsCreatesSquares(t *testing.T) {
	w := newBoardWorld(t, 8)

	var received []SquareEvent
	SquareSpawned.Subscribe(w, func(_ donburi.World, e SquareEvent) {
		received = append(received, e)
	})

	n, err := CalculateCells(w)
	if err != nil {
		t.Fatalf("CalculateCells: %v", err)
	}
	if n != 60 {
		t.Errorf("created %d squares, want 60", n)
	}
	if got := Squares(w); got != 60 {
		t.Errorf("Squares = %d, want 60", got)
	}

	// Events are queued until flushed.
	if len(received) != 0 {
		t.Fatalf("events delivered before Flush: %d", len(received))
	}
	Flush(w)
	if len(received) != 60 {
		t.Fatalf("received %d events, want 60", len(received))
	}

	_, field, _ := FieldEntry(w)
	for _, e := range received {
		if field.IsCorner(e.Cell.I, e.Cell.J) {
			t.Errorf("corner cell (%d,%d) spawned", e.Cell.I, e.Cell.J)
		}
		if e.Cell.ID != uint32(e.Cell.I) {
			t.Errorf("ID = %d, want row %d", e.Cell.ID, e.Cell.I)
		}
		if e.Transform.Z != SquareZ {
			t.Errorf("Z = %v, want %v", e.Transform.Z, SquareZ)
		}
		if e.Transform.Position.X != field.Offset(e.Cell.I) || e.Transform.Position.Y != field.Offset(e.Cell.J) {
			t.Errorf("cell (%d,%d) at %v", e.Cell.I, e.Cell.J, e.Transform.Position)
		}
		if sq := Square.GetValue(w.Entry(e.Entity)); sq.Orientation != Horizontal || sq.Filled {
			t.Errorf("square %v = %+v", e.Entity, sq)
		}
	}
}

func TestSpawnTrianglesOnce(t *testing.T) {
	w := newBoardWorld(t, 4)
	if _, err := CalculateCells(w); err != nil {
		t.Fatal(err)
	}

	var received []TriangleEvent
	TriangleSpawned.Subscribe(w, func(_ donburi.World, e TriangleEvent) {
		received = append(received, e)
	})

	rng := &seqRand{}
	if n := SpawnTriangles(w, rng); n != 12 {
		t.Errorf("first SpawnTriangles = %d, want 12", n)
	}
	if n := SpawnTriangles(w, rng); n != 0 {
		t.Errorf("second SpawnTriangles = %d, want 0", n)
	}
	if got := Triangles(w); got != 12 {
		t.Errorf("Triangles = %d, want 12", got)
	}

	Flush(w)
	if len(received) != 12 {
		t.Fatalf("received %d events, want 12", len(received))
	}

	counts := map[TriangleColor]int{}
	squares := map[donburi.Entity]bool{}
	for _, e := range received {
		counts[e.Color]++
		if squares[e.Square] {
			t.Errorf("square %v got two triangles", e.Square)
		}
		squares[e.Square] = true
		if math.Abs(e.Transform.Rotation-math.Pi/2) > 1e-12 {
			t.Errorf("Rotation = %v, want π/2", e.Transform.Rotation)
		}
		if e.Transform.Position != (board.Vec2{}) {
			t.Errorf("triangle offset = %v, want square center", e.Transform.Position)
		}
	}
	// The sequential source deals the palette round-robin.
	for _, c := range []TriangleColor{Red, Green, Blue, Teal} {
		if counts[c] != 3 {
			t.Errorf("%v dealt %d times, want 3", c, counts[c])
		}
	}
	if len(counts) != 4 {
		t.Errorf("colors outside the spawn palette: %v", counts)
	}
}

func TestEachTriangle(t *testing.T) {
	w := newBoardWorld(t, 3)
	if _, err := CalculateCells(w); err != nil {
		t.Fatal(err)
	}
	SpawnTriangles(w, &seqRand{})

	n := 0
	EachTriangle(w, func(tri TriangleData, tr TransformData) {
		n++
		if tr.Z != TriangleZ {
			t.Errorf("Z = %v, want %v", tr.Z, TriangleZ)
		}
	})
	if n != 5 {
		t.Errorf("visited %d triangles, want 5", n)
	}
}

func TestTriangleColorNames(t *testing.T) {
	tests := []struct {
		c    TriangleColor
		path string
	}{
		{Red, "tRed.png"},
		{Green, "tGreen.png"},
		{Blue, "tBlue.png"},
		{Orange, "tOrange.png"},
		{Purple, "tPurple.png"},
		{Teal, "tTeal.png"},
		{Yellow, "tYellow.png"},
	}
	for _, tt := range tests {
		if got := tt.c.AssetPath(); got != tt.path {
			t.Errorf("%v.AssetPath() = %q, want %q", tt.c, got, tt.path)
		}
	}
	if len(AllTriangleColors) != 7 {
		t.Errorf("AllTriangleColors has %d entries", len(AllTriangleColors))
	}
	if TriangleColor(42).String() != "Unknown" {
		t.Error("out-of-range color should be Unknown")
	}
}

func TestInspectSquare(t *testing.T) {
	w := newBoardWorld(t, 4)
	var squares []SquareEvent
	SquareSpawned.Subscribe(w, func(_ donburi.World, e SquareEvent) {
		squares = append(squares, e)
	})
	if _, err := CalculateCells(w); err != nil {
		t.Fatal(err)
	}
	Flush(w)
	first := squares[0]

	info, ok := InspectSquare(w, first.Entity)
	if !ok {
		t.Fatal("InspectSquare: square not found")
	}
	if info.Filled || info.Cell != first.Cell {
		t.Errorf("before spawn: %+v, want empty square at %+v", info, first.Cell)
	}

	SpawnTriangles(w, &seqRand{})
	info, _ = InspectSquare(w, first.Entity)
	if !info.Filled {
		t.Fatalf("after spawn: %+v, want a triangle", info)
	}
	inPalette := false
	for _, c := range spawnPalette {
		inPalette = inPalette || c == info.Triangle
	}
	if !inPalette {
		t.Errorf("triangle color %v not in the spawn palette", info.Triangle)
	}
}

func TestInspectSquareRejectsOtherEntities(t *testing.T) {
	w := newBoardWorld(t, 4)
	field, _, _ := FieldEntry(w)
	if _, ok := InspectSquare(w, field.Entity()); ok {
		t.Error("field entity reported as a square")
	}
	if _, ok := InspectSquare(w, donburi.Null); ok {
		t.Error("null entity reported as a square")
	}
}
