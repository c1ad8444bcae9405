package game

import "testing"

func TestIntentRejectsReversal(t *testing.T) {
	for d := Up; d <= Right; d++ {
		var b IntentBuffer
		b.RequestDirection(d.Opposite())
		if got := b.Resolve(d); got != d {
			t.Errorf("heading %v: reverse request produced %v", d, got)
		}
		if _, ok := b.Pending(); ok {
			t.Errorf("heading %v: rejected request was not cleared", d)
		}
	}
}

func TestIntentLastWriteWins(t *testing.T) {
	var b IntentBuffer
	b.RequestDirection(Up)
	b.RequestDirection(Left) // reversal of Right, replaces Up
	if got := b.Resolve(Right); got != Right {
		t.Errorf("Resolve = %v, want Right (latest request was a reversal)", got)
	}

	b.RequestDirection(Left)
	b.RequestDirection(Down)
	if got := b.Resolve(Right); got != Down {
		t.Errorf("Resolve = %v, want Down", got)
	}
	if got := b.Resolve(Down); got != Down {
		t.Errorf("empty buffer changed heading to %v", got)
	}
}

func TestIntentIgnoresInvalid(t *testing.T) {
	var b IntentBuffer
	b.RequestDirection(Up)
	b.RequestDirection(0)
	if got := b.Resolve(Left); got != Up {
		t.Errorf("invalid request overwrote pending: %v", got)
	}
}

func TestIntentPointerFallback(t *testing.T) {
	tests := []struct {
		name    string
		current Direction
		p       Pointer
		want    Direction
	}{
		{"right, upper half", Right, Pointer{X: 900, Y: 100, ViewW: 1000, ViewH: 800}, Up},
		{"left, lower half", Left, Pointer{X: 10, Y: 700, ViewW: 1000, ViewH: 800}, Down},
		{"up, left half", Up, Pointer{X: 100, Y: 10, ViewW: 1000, ViewH: 800}, Left},
		{"down, right half", Down, Pointer{X: 600, Y: 10, ViewW: 1000, ViewH: 800}, Right},
		{"exact centre", Right, Pointer{X: 500, Y: 400, ViewW: 1000, ViewH: 800}, Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b IntentBuffer
			b.RequestPointer(tt.p)
			if got := b.Resolve(tt.current); got != tt.want {
				t.Errorf("Resolve = %v, want %v", got, tt.want)
			}
			if got := b.Resolve(tt.want); got != tt.want {
				t.Errorf("pointer was consumed twice: %v", got)
			}
		})
	}
}

func TestIntentKeyAndPointerReplaceEachOther(t *testing.T) {
	var b IntentBuffer
	b.RequestDirection(Up)
	b.RequestPointer(Pointer{X: 0, Y: 700, ViewW: 100, ViewH: 800})
	if got := b.Resolve(Right); got != Down {
		t.Errorf("pointer after key: %v, want Down", got)
	}

	b.RequestPointer(Pointer{X: 0, Y: 700, ViewW: 100, ViewH: 800})
	b.RequestDirection(Up)
	if got := b.Resolve(Right); got != Up {
		t.Errorf("key after pointer: %v, want Up", got)
	}
}
