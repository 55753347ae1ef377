package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Pos
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     Pos(36),
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Pos(7),
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Pos(56),
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
			if n := got.Notation(); n != tt.notation {
				t.Errorf("unexpected notation: got=%s want=%s", n, tt.notation)
			}
		})
	}
}

func TestNewPos(t *testing.T) {
	t.Parallel()
	tests := []struct {
		row, col Pos
		want     Pos
	}{
		{row: 0, col: 0, want: 0},
		{row: 7, col: 4, want: 60},
		{row: 3, col: 7, want: 31},
		{row: -1, col: 0, want: PosInvalid},
		{row: 0, col: 8, want: PosInvalid},
		{row: 8, col: 8, want: PosInvalid},
	}

	for _, tt := range tests {
		if got := NewPos(tt.row, tt.col); got != tt.want {
			t.Errorf("unexpected pos for (%d,%d): got=%d want=%d", tt.row, tt.col, got, tt.want)
		}
	}
}

func TestMirror(t *testing.T) {
	t.Parallel()
	for p := Pos(0); p < MaxComponentScalar*MaxComponentScalar; p++ {
		m := p.Mirror()
		if m.Col() != p.Col() || m.Row() != MaxComponentScalar-1-p.Row() {
			t.Errorf("unexpected mirror of %s: got=%s", p, m)
		}
		if m.Mirror() != p {
			t.Errorf("mirror is not an involution for %s", p)
		}
	}
}
