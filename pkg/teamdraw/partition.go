// Package teamdraw splits a roster into teams from a string seed.
//
// The same candidates (in the same order), team count, mode and seed always
// produce the same teams, which is what allows a stored draw to be audited or
// re-run later.
package teamdraw

// Mode selects how candidates are spread over the teams.
type Mode string

const (
	ModeBalanced Mode = "balanced"
	ModeRandom   Mode = "random"
)

// Short position codes that get their own bucket in balanced mode.
const (
	ShortPositionAttack  = "atk"
	ShortPositionDefense = "def"
)

// Candidate is a participant of a draw. ID is nil for guests that are not on
// the roster.
type Candidate struct {
	ID            *int64
	Name          string
	Position      string
	ShortPosition string
}

// Team is one squad of a draw. Members keep assignment order.
type Team struct {
	Index   int
	Members []Candidate
}

// Partition distributes candidates over teamCount teams.
//
// Random mode shuffles the whole list once. Balanced mode shuffles the attack,
// defense and remaining buckets in that order with one shared stream, then
// deals attack, defense and the rest round-robin into the same teams.
// A teamCount below 1 is treated as 1.
func Partition(candidates []Candidate, teamCount int, mode Mode, seed string) []Team {
	return partition(candidates, teamCount, mode, NewGenerator(seed))
}

func partition(candidates []Candidate, teamCount int, mode Mode, gen *Generator) []Team {
	if teamCount < 1 {
		teamCount = 1
	}

	teams := make([]Team, teamCount)
	for i := range teams {
		teams[i] = Team{Index: i, Members: []Candidate{}}
	}

	if mode == ModeBalanced {
		attack, defense, others := splitByPosition(candidates)

		attack = shuffle(attack, gen)
		defense = shuffle(defense, gen)
		others = shuffle(others, gen)

		distribute(attack, teams)
		distribute(defense, teams)
		distribute(others, teams)
		return teams
	}

	distribute(shuffle(candidates, gen), teams)
	return teams
}

// splitByPosition keeps the input order inside each bucket.
func splitByPosition(candidates []Candidate) (attack, defense, others []Candidate) {
	for _, c := range candidates {
		switch c.ShortPosition {
		case ShortPositionAttack:
			attack = append(attack, c)
		case ShortPositionDefense:
			defense = append(defense, c)
		default:
			others = append(others, c)
		}
	}
	return attack, defense, others
}

// shuffle returns a Fisher-Yates shuffled copy of list. It takes exactly
// len(list)-1 values from gen (none for lists shorter than 2).
func shuffle(list []Candidate, gen *Generator) []Candidate {
	out := make([]Candidate, len(list))
	copy(out, list)
	for i := len(out) - 1; i > 0; i-- {
		j := int(gen.Next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// distribute appends the k-th element to team k mod len(teams).
func distribute(ordered []Candidate, teams []Team) {
	for k, c := range ordered {
		t := &teams[k%len(teams)]
		t.Members = append(t.Members, c)
	}
}
