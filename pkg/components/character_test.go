package components

import "testing"

func TestParseCharacterKind(t *testing.T) {
	tests := []struct {
		in      string
		want    CharacterKind
		wantErr bool
	}{
		{in: "player", want: KindPlayer},
		{in: "Enemy", want: KindEnemy},
		{in: " npc ", want: KindNPC},
		{in: "drone", want: KindDrone},
		{in: "boss", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCharacterKind(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCharacterKind(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCharacterKind(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCharacterKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != trimLower(tt.in) {
				t.Errorf("String() round trip = %q", got.String())
			}
		})
	}
}

func trimLower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

func TestFactionOf(t *testing.T) {
	if FactionOf(KindEnemy) != FactionHostile {
		t.Error("enemies should be hostile")
	}
	for _, k := range []CharacterKind{KindPlayer, KindNPC, KindDrone} {
		if FactionOf(k) != FactionParty {
			t.Errorf("%v should belong to the party", k)
		}
	}
}

func TestMoveStateNames(t *testing.T) {
	if len(AllMoveStates) != 9 {
		t.Fatalf("expected 9 move states, got %d", len(AllMoveStates))
	}
	for _, s := range AllMoveStates {
		parsed, err := ParseMoveState(s.String())
		if err != nil || parsed != s {
			t.Errorf("ParseMoveState(%q) = %v, %v", s.String(), parsed, err)
		}
	}
	if _, err := ParseMoveState("dance"); err == nil {
		t.Error("unknown state name should fail")
	}
}

func TestMoveStateLocked(t *testing.T) {
	m := &MoveStateComponent{State: StateAttack, AttackTime: 0.3, StateTime: 0.1}
	if !m.IsLocked() {
		t.Error("attack in progress should lock input")
	}
	m.StateTime = 0.3
	if m.IsLocked() {
		t.Error("finished attack should release lock")
	}
	m.State = StateDead
	if !m.IsLocked() {
		t.Error("dead is always locked")
	}
}
