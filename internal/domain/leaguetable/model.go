package leaguetable

// Entry is one manager's row in a classic league table.
type Entry struct {
	Manager     int
	TeamName    string
	PlayerName  string
	Rank        int
	LastRank    int
	TotalPoints int
	EventTotal  int
}

// League is a classic league table as of the last load. It is replaced
// wholesale on every load.
type League struct {
	ID      int
	Name    string
	Entries []Entry
}

func (l League) ManagerIDs() []int {
	out := make([]int, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, e.Manager)
	}
	return out
}

// TeamName returns the team name of a manager in the table.
func (l League) TeamName(manager int) (string, bool) {
	for _, e := range l.Entries {
		if e.Manager == manager {
			return e.TeamName, true
		}
	}
	return "", false
}
