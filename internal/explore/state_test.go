package explore

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Idle, FirstWall, true},
		{Idle, ExploreRoom, false},
		{FirstWall, ExploreRoom, true},
		{FirstWall, MovingToDoorway, false},
		{ExploreRoom, Auctioning, true},
		{ExploreRoom, MovingToDoorway, true},
		{ExploreRoom, Done, false},
		{Auctioning, ExploreRoom, true},
		{Auctioning, MovingToDoorway, true},
		{MovingToDoorway, Done, true},
		{MovingToDoorway, ExploreRoom, true},
		{Done, ExploreRoom, false},
		{State(42), Idle, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// reachable returns the states reachable from start without entering skip.
func reachable(start State, skip State) map[State]bool {
	seen := map[State]bool{start: true}
	queue := []State{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, next := range ValidTransitions[s] {
			if next == skip || seen[next] {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}

func TestDoneReachability(t *testing.T) {
	if !reachable(Idle, State(255))[Done] {
		t.Fatal("Done must be reachable from Idle")
	}
	for _, via := range []State{FirstWall, ExploreRoom, MovingToDoorway} {
		if reachable(Idle, via)[Done] {
			t.Errorf("Done reachable from Idle without passing %v", via)
		}
	}
}

func TestTerminal(t *testing.T) {
	for s := range ValidTransitions {
		if got, want := s.IsTerminal(), s == Done; got != want {
			t.Errorf("%v.IsTerminal() = %v, want %v", s, got, want)
		}
	}
}
